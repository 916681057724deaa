package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "drift",
	Short:        "Drift CLI — keep documentation in step with code changes",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Drift scans a git repository, scores which changed files matter to which
documentation sections, and assembles a prioritized change report ready for
review or suggestion generation.`,
}

// checkGitAvailable returns a clear error if git is not found on PATH.
func checkGitAvailable() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is not installed or not on PATH\n" +
			"  Drift relies on git for change discovery and diff statistics.\n" +
			"  Install git from https://git-scm.com and try again.")
	}
	return nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
