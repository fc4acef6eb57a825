package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lattice/internal/diagfmt"
	"lattice/internal/driver"
	"lattice/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lt",
	Short: "Parse a source file and dump its syntax tree",
	Long: `Parse builds the lossless syntax tree of a file and prints it.
The tree format lists one node per line with its byte range; syntax errors
follow the nodes they were reported at.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "", "output format (tree|json|diag), default from lattice.toml")
	parseCmd.Flags().Bool("cache", true, "reuse dumps from the user cache directory")
}

func runParse(cmd *cobra.Command, args []string) error {
	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	cfg := manifest.Config

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = cfg.Dump.Format
	}
	useCache := cfg.Dump.Cache
	if cmd.Flags().Changed("cache") {
		useCache = boolFlag(cmd, "cache")
	}
	maxDiags, err := maxDiagnostics(cmd, cfg)
	if err != nil {
		return err
	}

	opts := driver.ParseOptions{MaxDiagnostics: maxDiags, Format: format}
	if useCache {
		cache, err := driver.OpenUserDumpCache("lattice")
		if err == nil {
			opts.Cache = cache
		} else if !boolFlag(cmd, "quiet") {
			fmt.Fprintf(cmd.ErrOrStderr(), "dump cache disabled: %v\n", err)
		}
	}
	showTimings := boolFlag(cmd, "timings")
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	result, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	if result.Dump != "" {
		if _, err := io.WriteString(cmd.OutOrStdout(), result.Dump); err != nil {
			return err
		}
	}
	if result.Bag.Len() > 0 && (format == driver.FormatDiag || !boolFlag(cmd, "quiet")) {
		result.Bag.Sort()
		prettyOpts := diagfmt.PrettyOpts{Color: useColor(cmd, errFile(cmd)), ShowNotes: showTimings}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, prettyOpts); err != nil {
			return err
		}
	}
	if showTimings && result.Cached {
		fmt.Fprintln(cmd.ErrOrStderr(), "dump served from cache")
	}
	if result.ErrorCount > 0 && format == driver.FormatDiag {
		return errFindings
	}
	return nil
}
