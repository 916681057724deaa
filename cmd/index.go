package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/drift-docs/drift-cli/internal/analyze"
	"github.com/drift-docs/drift-cli/internal/config"
	"github.com/drift-docs/drift-cli/internal/docscan"
	driftindex "github.com/drift-docs/drift-cli/internal/index"
	"github.com/spf13/cobra"
)

var (
	flagIndexRepo  string
	flagIndexForce bool
	flagIndexCheck bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the documentation term index",
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&flagIndexRepo, "repo", ".", "Repository root to index")
	indexCmd.Flags().BoolVar(&flagIndexForce, "force", false, "Rebuild even if the cached index is fresh")
	indexCmd.Flags().BoolVar(&flagIndexCheck, "check", false, "Report staleness without building")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagIndexRepo)
	if err != nil {
		return err
	}

	classifier := analyze.NewClassifier(nil, nil)
	docs, err := docscan.Scan(flagIndexRepo, cfg.DocsDir, classifier)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		printMissing("", fmt.Sprintf("no markdown documents under %s", cfg.DocsDir))
		return nil
	}

	indexPath := filepath.Join(flagIndexRepo, cfg.IndexPath)

	if flagIndexCheck {
		ix := driftindex.NewTermIndex()
		switch {
		case !ix.Load(indexPath):
			printMissing("", fmt.Sprintf("no index cache at %s", cfg.IndexPath))
		case ix.IsStale(docs):
			printWarn("", "index is stale; run 'drift index' to rebuild")
		default:
			printOK("", fmt.Sprintf("index is fresh (%d doc(s), %d term(s))", len(ix.DocHashes), len(ix.TermToDocs)))
		}
		return nil
	}

	builder := &driftindex.Builder{
		Path:            indexPath,
		ExtractPatterns: true,
		Force:           flagIndexForce,
	}
	ix, rebuilt, err := builder.BuildIfNeeded(docs)
	if err != nil {
		return err
	}

	if rebuilt {
		printOK("", fmt.Sprintf("index rebuilt: %d doc(s), %d term(s), %d pattern categor(ies)",
			len(ix.DocHashes), len(ix.TermToDocs), len(ix.CodePatterns)))
		printOK("", fmt.Sprintf("written: %s", cfg.IndexPath))
	} else {
		printSkip("", "index already fresh; use --force to rebuild anyway")
	}
	return nil
}
