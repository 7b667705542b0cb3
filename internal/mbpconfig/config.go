// Package mbpconfig is a small YAML-backed config for the projector's
// process-wide tunables: the vars_to_elim size cap spec.md §4.1 names
// (MaxVars) and the debug-assertion toggle spec.md §3's "Global
// invariants" section says runs "in debug" (DebugAssertions). The
// teacher has no runtime config loader of its own; this mirrors how
// the broader example pack's repos load YAML-backed runtime
// configuration rather than hand-rolling a flag parser.
package mbpconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"mbp/internal/projector"
)

// Config is the on-disk shape of an mbp config file.
type Config struct {
	MaxVars         int  `yaml:"max_vars"`
	DebugAssertions bool `yaml:"debug_assertions"`
}

// Default returns the projector package's built-in defaults.
func Default() Config {
	return Config{MaxVars: projector.MaxVars, DebugAssertions: projector.DebugAssertions}
}

// Load reads a YAML config file, starting from Default and letting the
// file override whichever fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply pushes the config into the projector package's process-wide
// tunables.
func (c Config) Apply() {
	projector.MaxVars = c.MaxVars
	projector.DebugAssertions = c.DebugAssertions
}
