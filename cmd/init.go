package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drift-docs/drift-cli/internal/config"
	"github.com/drift-docs/drift-cli/internal/scope"
	"github.com/spf13/cobra"
)

var (
	flagInitRepo  string
	flagInitScope bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap drift configuration for a repository",
	Long: `Initialize drift for a repository:

  drift init            Write .drift.yaml and ~/.drift/.env templates
  drift init --scope    Additionally generate a starter scope template
                        from the markdown files under the docs directory`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagInitRepo, "repo", ".", "Repository root to initialize")
	initCmd.Flags().BoolVar(&flagInitScope, "scope", false, "Generate a starter scope template from the docs tree")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	// ── 1. Resolve ~/.drift directory ─────────────────────────────────────────
	driftDir, err := config.DriftDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(driftDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", driftDir, err)
	}
	printOK("", fmt.Sprintf("drift directory ready: %s", driftDir))

	// ── 2. Write credentials template if missing ──────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf("credentials template: %s", envPath))

	// ── 3. Write .drift.yaml if missing ───────────────────────────────────────
	cfgPath := filepath.Join(flagInitRepo, config.ConfigName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := config.Save(config.DefaultConfig(), flagInitRepo); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("config already exists: %s", cfgPath))
	}

	cfg, err := config.Load(flagInitRepo)
	if err != nil {
		return err
	}

	// ── 4. Prepare the cache directory ────────────────────────────────────────
	cacheDir := filepath.Dir(filepath.Join(flagInitRepo, cfg.IndexPath))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("cannot create cache dir %s: %w", cacheDir, err)
	}

	// ── 5. Optionally bootstrap a scope template ──────────────────────────────
	if flagInitScope {
		scopePath := filepath.Join(flagInitRepo, cfg.ScopePath)
		if _, err := os.Stat(scopePath); err == nil {
			printSkip("", fmt.Sprintf("scope template already exists: %s", cfg.ScopePath))
		} else {
			tpl, err := scope.Bootstrap(flagInitRepo, cfg.DocsDir)
			if err != nil {
				return err
			}
			if len(tpl.Docs) == 0 {
				printWarn("", fmt.Sprintf("no markdown files under %s; wrote no scope template", cfg.DocsDir))
			} else {
				if err := tpl.Save(scopePath); err != nil {
					return err
				}
				printOK("", fmt.Sprintf("starter scope template written: %s (%d doc(s), %d section(s)) — review and edit it",
					cfg.ScopePath, len(tpl.Docs), tpl.SectionCount()))
			}
		}
	}

	fmt.Println("\n✓  drift init complete. Run 'drift status' to verify your setup.")
	return nil
}
