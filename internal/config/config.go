// Package config resolves velox's configuration — defaults, an optional
// config file, then environment variables, each layer overriding the
// last — and locates the global ignore file spec.md §6 says the
// environment should supply a path for.
//
// The teacher's go.mod already declared knadh/koanf/v2 plus its confmap,
// file, and env/v2 providers, but no file in the teacher repo imports
// them (cmd/aide/main.go hand-rolled an os.Getenv-based getEnvOrDefault
// instead). This package gives those dependencies the job they were
// already paid for.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "VELOX_"

// Config is the fully resolved set of settings that don't come from a
// one-shot CLI flag: worker count, default context lines, color mode,
// and the maximum line length for streaming search.
type Config struct {
	Workers       int
	ContextBefore int
	ContextAfter  int
	Color         string // "auto", "always", "never"
	MaxLineBytes  int
}

var defaults = map[string]interface{}{
	"workers":        0, // 0 = walk.DefaultWorkerCount()
	"context_before": 0,
	"context_after":  0,
	"color":          "auto",
	"max_line_bytes": 0, // 0 = internal/search's own default
}

// Load resolves Config from, in increasing priority: built-in defaults,
// the config file at configPath (if non-empty and present; a missing
// file is not an error, since having no config file is the common case),
// then VELOX_-prefixed environment variables.
func Load(configPath string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, err
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
				return Config{}, err
			}
		}
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// Keys are flat, so VELOX_CONTEXT_BEFORE maps to context_before.
			return strings.ToLower(strings.TrimPrefix(k, envPrefix)), v
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, err
	}

	return Config{
		Workers:       k.Int("workers"),
		ContextBefore: k.Int("context_before"),
		ContextAfter:  k.Int("context_after"),
		Color:         k.String("color"),
		MaxLineBytes:  k.Int("max_line_bytes"),
	}, nil
}

// DefaultConfigPath returns the conventional config-home location for
// velox's own config file ($XDG_CONFIG_HOME/velox/config.json, falling
// back to $HOME/.config/velox/config.json).
func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "velox", "config.json")
}

// GlobalIgnorePath locates the user's global ignore file: the
// git-configured core.excludesFile is discovered independently by
// internal/ignore (which has a repository to ask), so this is the
// fallback used outside a repository — a conventional config-home
// location, mirroring DefaultConfigPath's search order.
func GlobalIgnorePath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "velox", "ignore")
}
