package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lattice/internal/diag"
	"lattice/internal/diagfmt"
	"lattice/internal/driver"
	"lattice/internal/observ"
	"lattice/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Parse files and verify syntax tree invariants",
	Long: `Check parses every .lt file under the given paths (default: the current
directory), reports syntax errors and verifies block structure and tree
shape. It exits with 1 on syntax errors and with 2 on broken invariants.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("tree-invariants", true, "also check tree shape, not only block structure")
	checkCmd.Flags().String("output", "pretty", "diagnostics format (pretty|short|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	cfg := manifest.Config

	jobs := cfg.Check.Jobs
	if cmd.Flags().Changed("jobs") {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	treeInvariants := cfg.Check.TreeInvariants
	if cmd.Flags().Changed("tree-invariants") {
		treeInvariants = boolFlag(cmd, "tree-invariants")
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	switch output {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown output format %q (expected pretty|short|json)", output)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiMode, err := parseSwitch("ui", uiFlag)
	if err != nil {
		return err
	}
	quiet := boolFlag(cmd, "quiet")

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := collectSources(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no .lt files found")
		}
		return nil
	}

	opts := driver.CheckOptions{
		Jobs:           jobs,
		MaxErrors:      cfg.Check.MaxErrors,
		TreeInvariants: treeInvariants,
	}
	if boolFlag(cmd, "timings") {
		opts.Timer = observ.NewTimer()
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(manifest.Root)

	var results []driver.CheckResult
	if !quiet && output == "pretty" && uiMode.enabledFor(outFile(cmd)) {
		results, err = runCheckWithUI(cmd.Context(), "lattice check", fileSet, paths, opts)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), fileSet, paths, opts)
	}
	if err != nil {
		return err
	}

	if err := reportCheck(cmd, fileSet, results, output); err != nil {
		return err
	}
	if opts.Timer != nil {
		if err := opts.Timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	summary := driver.Summarize(results)
	if !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), summary.String())
	}
	switch {
	case summary.Violations > 0:
		return fmt.Errorf("%w in %d files", errInvariant, summary.Violations)
	case summary.LoadFailures > 0:
		for _, r := range results {
			if r.LoadErr != nil {
				return r.LoadErr
			}
		}
	case summary.Errors > 0:
		return errFindings
	}
	return nil
}

// collectSources expands directories into their .lt files, keeping explicit
// files as given.
func collectSources(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := driver.ListSourceFiles(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

func reportCheck(cmd *cobra.Command, fileSet *source.FileSet, results []driver.CheckResult, output string) error {
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiags <= 0 {
		maxDiags = 1<<16 - 1
	}
	all := diag.NewBag(maxDiags)
	// Merge расширил бы лимит, поэтому Add
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			all.Add(d)
		}
	}
	all.Sort()
	all.Dedup()

	switch output {
	case "json":
		// JSON пишем всегда, даже пустой
		return diagfmt.JSON(cmd.OutOrStdout(), all, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			PathMode:         diagfmt.PathModeRelative,
		})
	case "short":
		return diagfmt.Short(cmd.OutOrStdout(), all, fileSet, false)
	}
	if all.Len() == 0 {
		return nil
	}
	return diagfmt.Pretty(cmd.ErrOrStderr(), all, fileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, errFile(cmd)),
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
}
