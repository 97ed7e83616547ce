package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lintcheck/internal/config"
	"lintcheck/internal/diag"
	"lintcheck/internal/diagfmt"
	"lintcheck/internal/driver"
	"lintcheck/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Run style checks on a C++ source file or directory",
	Long:  `Run style checks to find suspicious loop conditions in C++ source files or all matching files within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command used by runCheck.
func init() {
	registerCheckFlags(checkCmd)
}

func registerCheckFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().String("config", "", "path to lintcheck.toml (default: nearest manifest above the target)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Int("min-confidence", 0, "drop findings below this confidence (1-5, overrides config)")
	cmd.Flags().StringSlice("category", nil, "only report the listed categories (e.g. runtime/for_loop_condition)")
	cmd.Flags().Bool("cache", false, "reuse cached results for unchanged files")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("no-context", false, "omit source line context in pretty output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("progress", false, "show a live progress view for directory runs")
}

// runCheck executes the "check" command: it resolves configuration, runs the
// checks for the provided path (single file or directory), formats the
// results in the chosen output format, and exits with a non-zero status when
// any findings remain after filtering.
func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cfg, err := resolveConfig(cmd, target)
	if err != nil {
		return err
	}

	opts, err := buildCheckOptions(cmd, cfg, maxDiagnostics, showTimings)
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = cfg.Check.Jobs
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	noContext, err := cmd.Flags().GetBool("no-context")
	if err != nil {
		return fmt.Errorf("failed to get no-context flag: %w", err)
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   !noContext,
		PathMode:  pathMode,
		ShowNotes: withNotes,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fileSet *source.FileSet
		results []driver.CheckResult
	)
	if st.IsDir() {
		useUI := showProgress && format == "pretty" && isTerminal(os.Stdout)
		if useUI {
			fileSet, results, err = runCheckDirWithUI(cmd.Context(), "checking "+target, target, opts, jobs)
		} else {
			fileSet, results, err = driver.CheckDir(cmd.Context(), target, opts, jobs)
		}
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		var result driver.CheckResult
		fileSet, result, err = driver.CheckFile(target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		results = []driver.CheckResult{result}
	}

	exit := 0
	for _, r := range results {
		if r.Bag.HasFindings(opts.MinConfidence) {
			exit = 1
			break
		}
	}

	switch format {
	case "pretty":
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			diagfmt.Pretty(os.Stdout, r.Bag, fileSet, prettyOpts)
		}
		if exit == 0 && !quiet {
			fmt.Fprintln(os.Stdout, "no findings")
		}
	case "short":
		all := make([]diag.Diagnostic, 0, len(results))
		for _, r := range results {
			all = append(all, r.Bag.Items()...)
		}
		output := diag.FormatShortDiagnostics(all, fileSet, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			displayPath := r.Path
			if abs, err := source.AbsolutePath(displayPath); err == nil && fullPath {
				displayPath = abs
			}
			output[displayPath] = diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	}

	if showTimings {
		printTimings(results)
	}

	if exit != 0 {
		// Suppress cobra usage output on findings; they are already printed.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// resolveConfig loads the manifest named by --config, or the nearest one
// above the target, or the defaults.
func resolveConfig(cmd *cobra.Command, target string) (config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return config.Load(explicit)
	}

	startDir := target
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	if path, ok := config.Find(startDir); ok {
		return config.Load(path)
	}
	return config.Default(), nil
}

func buildCheckOptions(cmd *cobra.Command, cfg config.Config, maxDiagnostics int, showTimings bool) (driver.CheckOptions, error) {
	minConfidence, err := cmd.Flags().GetInt("min-confidence")
	if err != nil {
		return driver.CheckOptions{}, fmt.Errorf("failed to get min-confidence flag: %w", err)
	}
	if minConfidence == 0 {
		minConfidence = cfg.Check.MinConfidence
	}
	if minConfidence < 1 || minConfidence > 5 {
		return driver.CheckOptions{}, fmt.Errorf("min-confidence must be between 1 and 5, got %d", minConfidence)
	}

	categoryIDs, err := cmd.Flags().GetStringSlice("category")
	if err != nil {
		return driver.CheckOptions{}, fmt.Errorf("failed to get category flag: %w", err)
	}
	if len(categoryIDs) == 0 {
		categoryIDs = cfg.Check.Categories
	}
	var categories map[diag.Code]bool
	if len(categoryIDs) > 0 {
		categories = make(map[diag.Code]bool, len(categoryIDs))
		for _, id := range categoryIDs {
			code, ok := diag.CodeByID(id)
			if !ok {
				return driver.CheckOptions{}, fmt.Errorf("unknown category: %s", id)
			}
			categories[code] = true
		}
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return driver.CheckOptions{}, fmt.Errorf("failed to get cache flag: %w", err)
	}
	var cache *driver.DiskCache
	if useCache {
		cache, err = driver.OpenDiskCache("lintcheck")
		if err != nil {
			return driver.CheckOptions{}, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	return driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics,
		MinConfidence:  diag.Confidence(minConfidence),
		Categories:     categories,
		Extensions:     cfg.Check.Extensions,
		EnableTimings:  showTimings,
		Cache:          cache,
	}, nil
}

func printTimings(results []driver.CheckResult) {
	for _, r := range results {
		if r.Timing == nil {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s timings:\n", r.Path)
		for _, p := range r.Timing.Phases {
			fmt.Fprintf(os.Stderr, "  %-20s %7.2f ms\n", p.Name, p.DurationMS)
		}
		fmt.Fprintf(os.Stderr, "  %-20s %7.2f ms\n", "total", r.Timing.TotalMS)
	}
}
