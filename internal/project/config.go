package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrBadDumpFormat = errors.New("invalid [dump].format")
	ErrUnknownKey    = errors.New("unknown configuration key")
)

// DumpFormats lists the accepted values of [dump].format.
var DumpFormats = []string{"tree", "json"}

// Config is the decoded lattice.toml. Keys missing from the file keep the
// values from DefaultConfig.
type Config struct {
	Check CheckConfig `toml:"check"`
	Dump  DumpConfig  `toml:"dump"`
	Fuzz  FuzzConfig  `toml:"fuzz"`
}

type CheckConfig struct {
	MaxErrors      uint `toml:"max_errors"`      // 0 — без лимита
	Jobs           int  `toml:"jobs"`            // 0 — GOMAXPROCS
	TreeInvariants bool `toml:"tree_invariants"` // run CheckTreeInvariants too
}

type DumpConfig struct {
	Format string `toml:"format"`
	Cache  bool   `toml:"cache"`
}

type FuzzConfig struct {
	Seeds      string `toml:"seeds"`
	Iterations int    `toml:"iterations"`
	MaxLen     int    `toml:"max_len"`
	Crashers   string `toml:"crashers"`
}

// DefaultConfig is used when no lattice.toml is found.
func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{MaxErrors: 100, TreeInvariants: true},
		Dump:  DumpConfig{Format: "tree", Cache: true},
		Fuzz: FuzzConfig{
			Seeds:      "testdata",
			Iterations: 1000,
			MaxLen:     4096,
			Crashers:   filepath.Join(".lattice", "crashers"),
		},
	}
}

// Manifest is a located and decoded lattice.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Resolve makes a config-relative path absolute against the project root.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m == nil {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

// LoadManifest finds lattice.toml above startDir and decodes it.
// ok is false when there is no file; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   configPath,
		Root:   filepath.Dir(configPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if meta.IsDefined("dump", "format") {
		cfg.Dump.Format = strings.ToLower(strings.TrimSpace(cfg.Dump.Format))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if !slices.Contains(DumpFormats, c.Dump.Format) {
		return fmt.Errorf("%w %q (expected: %s)", ErrBadDumpFormat, c.Dump.Format, strings.Join(DumpFormats, "|"))
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("invalid [check].jobs %d: must be >= 0", c.Check.Jobs)
	}
	if c.Fuzz.Iterations <= 0 {
		return fmt.Errorf("invalid [fuzz].iterations %d: must be > 0", c.Fuzz.Iterations)
	}
	if c.Fuzz.MaxLen <= 0 {
		return fmt.Errorf("invalid [fuzz].max_len %d: must be > 0", c.Fuzz.MaxLen)
	}
	return nil
}
