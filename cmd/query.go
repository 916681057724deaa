package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/drift-docs/drift-cli/internal/analyze"
	"github.com/drift-docs/drift-cli/internal/config"
	"github.com/drift-docs/drift-cli/internal/docscan"
	driftindex "github.com/drift-docs/drift-cli/internal/index"
	"github.com/spf13/cobra"
)

var (
	flagQueryRepo string
	flagQueryK    int
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Find the documentation files most related to a piece of text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&flagQueryRepo, "repo", ".", "Repository root")
	queryCmd.Flags().IntVar(&flagQueryK, "k", 10, "Number of results to show")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	cfg, err := config.Load(flagQueryRepo)
	if err != nil {
		return err
	}

	docs, err := docscan.Scan(flagQueryRepo, cfg.DocsDir, analyze.NewClassifier(nil, nil))
	if err != nil {
		return err
	}
	builder := &driftindex.Builder{
		Path:            filepath.Join(flagQueryRepo, cfg.IndexPath),
		ExtractPatterns: true,
	}
	ix, _, err := builder.BuildIfNeeded(docs)
	if err != nil {
		return err
	}

	matches := ix.RelevantDocs(query)
	if flagQueryK > 0 && len(matches) > flagQueryK {
		matches = matches[:flagQueryK]
	}

	fmt.Printf("\ndrift query %q\n\n", query)
	fmt.Printf("Results (%d found):\n", len(matches))
	if len(matches) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, m := range matches {
		fmt.Fprintf(w, "  %d.\t[%d match(es)]\t%s\n", i+1, m.Matches, m.DocID)
	}
	return w.Flush()
}
