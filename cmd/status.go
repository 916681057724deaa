package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/drift-docs/drift-cli/internal/analyze"
	"github.com/drift-docs/drift-cli/internal/config"
	"github.com/drift-docs/drift-cli/internal/docscan"
	driftindex "github.com/drift-docs/drift-cli/internal/index"
	"github.com/drift-docs/drift-cli/internal/scope"
	"github.com/spf13/cobra"
)

var flagStatusRepo string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, scope, and index health for a repository",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&flagStatusRepo, "repo", ".", "Repository root")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagStatusRepo)
	if err != nil {
		return err
	}

	printSection("Configuration")
	cfgPath := filepath.Join(flagStatusRepo, config.ConfigName)
	if _, err := os.Stat(cfgPath); err == nil {
		printOK("", fmt.Sprintf("config: %s", cfgPath))
	} else {
		printMissing("", fmt.Sprintf("no %s; using defaults (run 'drift init')", config.ConfigName))
	}
	printInfo("", fmt.Sprintf("docs dir: %s", cfg.DocsDir))
	printInfo("", fmt.Sprintf("base ref: %s", cfg.BaseRef))

	printSection("Scope")
	scopePath := filepath.Join(flagStatusRepo, cfg.ScopePath)
	tpl, err := scope.Load(scopePath)
	if err != nil {
		printMissing("", fmt.Sprintf("no scope template at %s; scans pass all non-trivial changes through", cfg.ScopePath))
	} else {
		filter := scope.NewFilter(tpl, scope.Weights{}, 0)
		printOK("", fmt.Sprintf("%d document(s), %d section(s), %d distinct code pattern(s)",
			len(tpl.Docs), tpl.SectionCount(), filter.PatternCount()))
	}

	printSection("Term Index")
	docs, err := docscan.Scan(flagStatusRepo, cfg.DocsDir, analyze.NewClassifier(nil, nil))
	if err != nil {
		return err
	}
	indexPath := filepath.Join(flagStatusRepo, cfg.IndexPath)
	ix := driftindex.NewTermIndex()
	switch {
	case !ix.Load(indexPath):
		printMissing("", fmt.Sprintf("no index cache at %s (run 'drift index')", cfg.IndexPath))
	case ix.IsStale(docs):
		printWarn("", "index is stale against the current docs; run 'drift index'")
	default:
		printOK("", fmt.Sprintf("fresh: %d doc(s), %d term(s)", len(ix.DocHashes), len(ix.TermToDocs)))
	}
	printInfo("", fmt.Sprintf("%d markdown document(s) discovered under %s", len(docs), cfg.DocsDir))

	printSection("Git Status")
	if err := checkGitAvailable(); err != nil {
		return err
	}
	out, err := exec.Command("git", "-C", flagStatusRepo, "-c", "advice.statusHints=false", "status", "--short").Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("git status failed:\n%s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return fmt.Errorf("git status failed: %w", err)
	}
	if len(strings.TrimSpace(string(out))) == 0 {
		printOK("", "working tree clean")
	} else {
		fmt.Print(string(out))
	}
	return nil
}
