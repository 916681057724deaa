package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drift-docs/drift-cli/internal/analyze"
	"github.com/drift-docs/drift-cli/internal/config"
	"github.com/drift-docs/drift-cli/internal/docscan"
	"github.com/drift-docs/drift-cli/internal/format"
	"github.com/drift-docs/drift-cli/internal/gitio"
	driftindex "github.com/drift-docs/drift-cli/internal/index"
	"github.com/drift-docs/drift-cli/internal/llm"
	"github.com/drift-docs/drift-cli/internal/scope"
	"github.com/drift-docs/drift-cli/internal/state"
	"github.com/spf13/cobra"
)

var (
	flagScanRepo    string
	flagScanBase    string
	flagScanOut     string
	flagScanSuggest bool
	flagScanDebug   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan changed files and build a prioritized documentation-impact report",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&flagScanRepo, "repo", ".", "Repository root to scan")
	scanCmd.Flags().StringVar(&flagScanBase, "base", "", "Base ref to diff against (default from .drift.yaml)")
	scanCmd.Flags().StringVar(&flagScanOut, "out", "", "Write the report to a file instead of stdout")
	scanCmd.Flags().BoolVar(&flagScanSuggest, "suggest", false, "Send the report to the configured LLM and print its suggestions")
	scanCmd.Flags().BoolVar(&flagScanDebug, "debug", false, "Print per-file scoring details")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := checkGitAvailable(); err != nil {
		return err
	}

	cfg, err := config.Load(flagScanRepo)
	if err != nil {
		return err
	}
	base := flagScanBase
	if base == "" {
		base = cfg.BaseRef
	}

	repo := &gitio.Repo{Root: flagScanRepo}
	stats, err := repo.ChangedFiles(base)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		printInfo("", fmt.Sprintf("no changes against %s", base))
		return nil
	}

	// ── Classify + score ──────────────────────────────────────────────────────
	classifier := analyze.NewClassifier(nil, nil)
	changes := make(map[string]*state.ChangeRecord, len(stats))
	skipped := 0
	for _, st := range stats {
		rec := &state.ChangeRecord{Path: st.Path}
		if pat, ok := excludedBy(cfg.Excludes, st.Path); ok {
			rec.Priority = state.PrioritySkip
			rec.Skipped = true
			rec.SkipReason = fmt.Sprintf("excluded by config (%s)", pat)
			skipped++
			changes[st.Path] = rec
			continue
		}
		cls := classifier.Classify(st.Path)
		rec.Priority = cls.Priority
		if cls.Priority == state.PrioritySkip {
			rec.Skipped = true
			rec.SkipReason = cls.Reason()
			skipped++
		} else {
			mag := analyze.NewMagnitude(st.LinesAdded, st.LinesDeleted, st.IsRename, st.RenameSimilarity)
			rec.Magnitude = &mag
			rec.Summary = statSummary(st)
		}
		changes[st.Path] = rec
	}

	// ── Scope alignment (fail-open when no template exists) ───────────────────
	filtered := changes
	scopePath := filepath.Join(flagScanRepo, cfg.ScopePath)
	tpl, err := scope.Load(scopePath)
	switch {
	case err == nil:
		filter := scope.NewFilter(tpl, scopeWeights(cfg), cfg.MinRelevance)
		filtered, _ = filter.FilterChanges(changes)
	case errors.Is(err, os.ErrNotExist):
		printWarn("", fmt.Sprintf("no scope template at %s; passing all non-trivial changes through", cfg.ScopePath))
		filtered = withoutSkipped(changes)
	default:
		return err
	}

	// ── Term-index relevance boost ────────────────────────────────────────────
	docs, err := docscan.Scan(flagScanRepo, cfg.DocsDir, classifier)
	if err != nil {
		return err
	}
	builder := &driftindex.Builder{
		Path:            filepath.Join(flagScanRepo, cfg.IndexPath),
		ExtractPatterns: true,
	}
	ix, rebuilt, err := builder.BuildIfNeeded(docs)
	if err != nil {
		return err
	}
	if rebuilt && flagScanDebug {
		printInfo("", "term index rebuilt")
	}

	for _, rec := range filtered {
		attachTermMatches(ix, rec)
	}
	relevantDocs := ix.FilterRelevantDocs(filtered, docs, cfg.MinTermMatches)

	// ── Adaptive formatting ───────────────────────────────────────────────────
	proc := &format.Processor{
		HighThreshold:   cfg.HighDetail,
		MediumThreshold: cfg.MediumDetail,
	}
	body := proc.FormatAdaptive(filtered)

	printSection("Scan")
	printOK("", fmt.Sprintf("%d changed file(s): %d trivial skipped, %d in scope", len(stats), skipped, len(filtered)))
	printOK("", fmt.Sprintf("%d documentation file(s) potentially affected", len(relevantDocs)))
	if flagScanDebug {
		for _, rec := range proc.SortByPriority(filtered) {
			printInfo("", fmt.Sprintf("%s priority=%s magnitude=%.2f relevance=%.2f terms=%d",
				rec.Path, rec.Priority, rec.MagnitudeScore(), format.CombinedRelevance(rec), rec.TermMatches))
		}
	}

	if flagScanOut != "" {
		if err := os.WriteFile(flagScanOut, []byte(body), 0o644); err != nil {
			return fmt.Errorf("cannot write report %s: %w", flagScanOut, err)
		}
		printOK("", fmt.Sprintf("report written: %s", flagScanOut))
	} else if len(filtered) > 0 {
		fmt.Println()
		fmt.Print(body)
	}

	if flagScanSuggest {
		return runSuggest(body)
	}
	return nil
}

// runSuggest hands the report to the configured suggestion provider. A
// missing provider configuration downgrades to a warning: the scan output
// above is still the primary artifact.
func runSuggest(body string) error {
	if strings.TrimSpace(body) == "" {
		printSkip("", "nothing in scope; no suggestions requested")
		return nil
	}

	llmCfg, err := llm.LoadConfig()
	if err != nil {
		return err
	}
	prov, err := llm.NewFromConfig(llmCfg)
	if err != nil {
		printWarn("", fmt.Sprintf("suggestions unavailable: %v", err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	printInfo("", fmt.Sprintf("requesting suggestions from %s", prov.ModelID()))
	out, err := prov.Suggest(ctx, body)
	if err != nil {
		return fmt.Errorf("suggestion request failed: %w", err)
	}

	printSection("Suggestions")
	fmt.Println(out)
	return nil
}

// attachTermMatches queries the index with the change's path and summary
// text and records the strongest doc match count plus the related doc IDs.
func attachTermMatches(ix *driftindex.TermIndex, rec *state.ChangeRecord) {
	var q strings.Builder
	q.WriteString(rec.Path)
	if rec.Summary != nil {
		for _, c := range rec.Summary.SpecificChanges {
			q.WriteByte(' ')
			q.WriteString(c.Name)
			q.WriteByte(' ')
			q.WriteString(c.Description)
		}
		for _, f := range rec.Summary.FunctionalImpact {
			q.WriteByte(' ')
			q.WriteString(f)
		}
	}

	matches := ix.RelevantDocs(q.String())
	if len(matches) == 0 {
		return
	}
	rec.TermMatches = matches[0].Matches
	if rec.Magnitude != nil {
		n := len(matches)
		if n > 3 {
			n = 3
		}
		for _, m := range matches[:n] {
			rec.Magnitude.RelatedDocs = append(rec.Magnitude.RelatedDocs, m.DocID)
		}
	}
}

// statSummary derives the minimal code summary available without an LLM
// summarizer: language from the extension plus a line-count impact note.
func statSummary(st gitio.DiffStat) *state.CodeSummary {
	impact := fmt.Sprintf("%d line(s) added, %d deleted", st.LinesAdded, st.LinesDeleted)
	s := &state.CodeSummary{
		FunctionalImpact:    []string{impact},
		ProgrammingLanguage: languageFromPath(st.Path),
	}
	if st.IsRename {
		s.FunctionalImpact = append(s.FunctionalImpact,
			fmt.Sprintf("renamed from %s (similarity %d%%)", st.OldPath, st.RenameSimilarity))
	}
	return s
}

var extLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".rs":   "rust",
	".java": "java",
	".rb":   "ruby",
	".c":    "c",
	".cpp":  "cpp",
	".cs":   "csharp",
	".sh":   "shell",
	".md":   "markdown",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".json": "json",
}

func languageFromPath(p string) string {
	return extLanguages[strings.ToLower(filepath.Ext(p))]
}

func scopeWeights(cfg *config.Config) scope.Weights {
	return scope.Weights{
		Pattern:   cfg.Weights.Pattern,
		Category:  cfg.Weights.Category,
		Magnitude: cfg.Weights.Magnitude,
	}
}

// excludedBy matches the config exclude list against a path. Patterns ending
// in "/" exclude everything under a directory of that name; the rest are
// plain globs.
func excludedBy(excludes []string, p string) (string, bool) {
	for _, pat := range excludes {
		if dir, ok := strings.CutSuffix(pat, "/"); ok {
			if analyze.MatchPath("**/"+dir+"/**", p) {
				return pat, true
			}
			continue
		}
		if analyze.MatchPath(pat, p) {
			return pat, true
		}
	}
	return "", false
}

func withoutSkipped(changes map[string]*state.ChangeRecord) map[string]*state.ChangeRecord {
	out := make(map[string]*state.ChangeRecord, len(changes))
	for p, rec := range changes {
		if rec.Skipped {
			continue
		}
		out[p] = rec
	}
	return out
}
