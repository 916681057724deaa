package main

import "github.com/drift-docs/drift-cli/cmd"

func main() {
	cmd.Execute()
}
