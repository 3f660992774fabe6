package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "distress.toml"

// fileConfig mirrors distress.toml. Flags given on the command line win.
type fileConfig struct {
	Solve solveConfig `toml:"solve"`
	Input inputConfig `toml:"input"`
}

type solveConfig struct {
	Part     int      `toml:"part"`
	Alloc    string   `toml:"alloc"`
	Jobs     int      `toml:"jobs"`
	Dividers []string `toml:"dividers"`
	Cache    bool     `toml:"cache"`
	Format   string   `toml:"format"`
}

type inputConfig struct {
	Files []string `toml:"files"`
}

type loadedConfig struct {
	Path   string // пусто, если файла нет
	Root   string
	Config fileConfig
}

// resolveFiles makes input paths relative to the config directory.
func (c *loadedConfig) resolveFiles() []string {
	out := make([]string, 0, len(c.Config.Input.Files))
	for _, f := range c.Config.Input.Files {
		if f != "-" && !filepath.IsAbs(f) && c.Root != "" {
			f = filepath.Join(c.Root, f)
		}
		out = append(out, f)
	}
	return out
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fileConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Solve.Part < 0 || cfg.Solve.Part > 2 {
		return fileConfig{}, fmt.Errorf("%s: [solve].part must be 0, 1 or 2", path)
	}
	if cfg.Solve.Jobs < 0 {
		return fileConfig{}, fmt.Errorf("%s: [solve].jobs must not be negative", path)
	}
	return cfg, nil
}

// loadConfig reads --config, or searches upwards from startDir when the flag
// is empty. A missing file is not an error.
func loadConfig(explicit, startDir string) (*loadedConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &loadedConfig{}, nil
		}
		path = found
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &loadedConfig{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func configFromCommand(cmd *cobra.Command) (*loadedConfig, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	return loadConfig(explicit, "")
}
