package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lattice/internal/project"
)

// errFindings makes the process exit with 1 without printing anything more:
// the diagnostics already went to stderr.
var errFindings = errors.New("findings reported")

// errInvariant marks broken tree invariants and fuzz crashers; exit code 2.
var errInvariant = errors.New("invariant violated")

func exitCode(err error) int {
	if errors.Is(err, errInvariant) {
		return 2
	}
	return 1
}

// loadManifest resolves --config or searches lattice.toml upwards from the
// working directory. Without a file the defaults rooted at cwd are used.
func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		cfg, err := project.LoadConfig(explicit)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return nil, err
		}
		return &project.Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &project.Manifest{Root: wd, Config: project.DefaultConfig()}, nil
	}
	return manifest, nil
}

func maxDiagnostics(cmd *cobra.Command, cfg project.Config) (int, error) {
	flags := cmd.Root().PersistentFlags()
	n, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.Check.MaxErrors > 0 {
		return int(min(cfg.Check.MaxErrors, 1<<16-1)), nil
	}
	return n, nil
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, _ = cmd.Root().PersistentFlags().GetBool(name)
	}
	return v
}
