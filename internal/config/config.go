// Package config holds the validated run configuration handed to the core.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config is the immutable input of a run. A nil Include or Exclude means the
// list was not given at all, which differs from an empty list.
type Config struct {
	RootPath     string
	Include      []string
	Exclude      []string
	DryRun       bool
	NoAnimation  bool
	ASCIITheme   bool
	CatAnimation bool
}

// Normalize returns a copy with derived settings applied: the ascii theme has
// no mascot, and a relative root is made absolute.
func (c Config) Normalize() (Config, error) {
	out := c
	out.Include = cloneNames(c.Include)
	out.Exclude = cloneNames(c.Exclude)
	if out.ASCIITheme {
		out.CatAnimation = false
	}
	if out.RootPath == "" {
		out.RootPath = "."
	}
	abs, err := filepath.Abs(out.RootPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve path %q: %w", out.RootPath, err)
	}
	out.RootPath = abs
	return out, nil
}

// Validate rejects lists containing empty or path-like names. Matching is on
// base names only, so a separator can never match.
func (c Config) Validate() error {
	for _, list := range []struct {
		flag  string
		names []string
	}{{"include", c.Include}, {"exclude", c.Exclude}} {
		if list.names != nil && len(list.names) == 0 {
			return fmt.Errorf("--%s needs at least one name", list.flag)
		}
		for _, n := range list.names {
			if n == "" {
				return fmt.Errorf("--%s contains an empty name", list.flag)
			}
			if strings.ContainsRune(n, '/') || strings.ContainsRune(n, filepath.Separator) {
				return fmt.Errorf("--%s name %q must be a directory name, not a path", list.flag, n)
			}
		}
	}
	return nil
}

func cloneNames(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
