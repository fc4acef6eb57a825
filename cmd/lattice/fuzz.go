package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lattice/internal/driver"
)

var fuzzCmd = &cobra.Command{
	Use:   "fuzz [flags]",
	Short: "Mutate seed files and check parser invariants on every mutant",
	Long: `Fuzz runs a deterministic mutation loop over the seed corpus. Every
mutant is parsed, its block structure and tree shape are validated and its
AST is walked. Inputs that break an invariant are saved to the crashers
directory.`,
	Args: cobra.NoArgs,
	RunE: runFuzz,
}

func init() {
	fuzzCmd.Flags().Int("iterations", 0, "number of mutants (default from lattice.toml)")
	fuzzCmd.Flags().Uint64("seed", 0, "PRNG seed (0 = random)")
	fuzzCmd.Flags().String("seeds", "", "seed corpus directory (default from lattice.toml)")
	fuzzCmd.Flags().String("crashers", "", "crasher output directory (default from lattice.toml)")
}

func runFuzz(cmd *cobra.Command, args []string) error {
	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	cfg := manifest.Config.Fuzz

	iterations, err := cmd.Flags().GetInt("iterations")
	if err != nil {
		return fmt.Errorf("failed to get iterations flag: %w", err)
	}
	if iterations <= 0 {
		iterations = cfg.Iterations
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return fmt.Errorf("failed to get seed flag: %w", err)
	}
	seedsDir, _ := cmd.Flags().GetString("seeds")
	if seedsDir == "" {
		seedsDir = manifest.Resolve(cfg.Seeds)
	}
	crashDir, _ := cmd.Flags().GetString("crashers")
	if crashDir == "" {
		crashDir = manifest.Resolve(cfg.Crashers)
	}

	seeds, err := driver.LoadSeeds(seedsDir, cfg.MaxLen)
	if err != nil {
		return err
	}
	quiet := boolFlag(cmd, "quiet")
	stderr := cmd.ErrOrStderr()

	opts := driver.FuzzOptions{
		Seeds:      seeds,
		Iterations: iterations,
		MaxLen:     cfg.MaxLen,
		Seed:       seed,
		CrashDir:   crashDir,
	}
	if f := errFile(cmd); !quiet && f != nil && isTerminal(f) {
		step := max(iterations/100, 1)
		opts.Progress = func(done, total int) {
			if done%step == 0 || done == total {
				fmt.Fprintf(stderr, "\rfuzz: %d/%d", done, total)
			}
			if done == total {
				fmt.Fprintln(stderr)
			}
		}
	}

	report, err := driver.Fuzz(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(stderr, "fuzz: %d iterations, seed %d, %d seeds, %s\n",
			report.Iterations, report.Seed, len(seeds), report.Elapsed.Round(time.Millisecond))
	}
	if len(report.Crashers) == 0 {
		return nil
	}
	for _, c := range report.Crashers {
		fmt.Fprintf(stderr, "crasher %s\n  %v\n", c.Path, c.Err)
	}
	return fmt.Errorf("%w: %d crashers", errInvariant, len(report.Crashers))
}
