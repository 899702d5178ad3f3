package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, in lookup order.
const (
	FileName    = "inkwell.yaml"
	FileNameAlt = "inkwell.yml"
)

// maxUpwardSearchLevels bounds how far up the directory tree Load searches
// for a config file.
const maxUpwardSearchLevels = 10

const envPrefix = "INKWELL_"

func configIn(dir string) string {
	for _, name := range []string{FileName, FileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findProjectRoot searches upward from startDir for a config file. Returns
// "" when none is found within the search bound.
func findProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configIn(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load resolves the configuration. cfgFile, when non-empty, names an
// explicit config file and its directory becomes the project root; otherwise
// the file is searched upward from the working directory. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	projectRoot, configPath, err := resolveRoot(cfgFile)
	if err != nil {
		return nil, err
	}

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"content_dir": DefaultContentDir,
		"state_path":  DefaultStatePath,
		"port":        DefaultPort,
		"watch":       false,
		"verbose":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, when present.
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	// 3. Environment (INKWELL_CONTENT_DIR -> content_dir).
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// 4. Flags, only those explicitly set (kebab-case -> snake_case).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.ContentDir = resolvePath(cfg.ContentDir, projectRoot)
	cfg.StatePath = resolvePath(cfg.StatePath, projectRoot)
	return &cfg, nil
}

func resolveRoot(cfgFile string) (root, configPath string, err error) {
	if cfgFile != "" {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve config file: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return "", "", fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		return filepath.Dir(abs), abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	if root := findProjectRoot(cwd); root != "" {
		return root, configIn(root), nil
	}
	return cwd, "", nil
}

func resolvePath(path, base string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
