package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the per-workspace configuration file.
const ConfigFileName = "lefcheck.toml"

// Config is the optional lefcheck.toml contents.
type Config struct {
	Paths  PathsConfig  `toml:"paths"`
	Output OutputConfig `toml:"output"`
	Report ReportConfig `toml:"report"`
}

// PathsConfig pins the inputs instead of workspace discovery.
type PathsConfig struct {
	LEF  []string `toml:"lef"`
	Lib  []string `toml:"lib"`
	Tech string   `toml:"tech"`
}

// OutputConfig controls where canonical renderings are written.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// ReportConfig controls the diagnostic report.
type ReportConfig struct {
	Format string `toml:"format"`
}

// LoadConfig parses a lefcheck.toml file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// FindConfig returns the path of the workspace config, if present.
func FindConfig(root string) (string, bool) {
	path := filepath.Join(root, ConfigFileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

// Apply overrides the discovered workspace with configured paths, resolved
// relative to the config's directory.
func (cfg Config) Apply(ws *Workspace, configDir string) {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(configDir, p)
	}
	if len(cfg.Paths.LEF) > 0 {
		ws.LEF = ws.LEF[:0]
		for _, p := range cfg.Paths.LEF {
			ws.LEF = append(ws.LEF, resolve(p))
		}
	}
	if len(cfg.Paths.Lib) > 0 {
		ws.Lib = ws.Lib[:0]
		for _, p := range cfg.Paths.Lib {
			ws.Lib = append(ws.Lib, resolve(p))
		}
	}
	if cfg.Paths.Tech != "" {
		ws.Tech = resolve(cfg.Paths.Tech)
	}
}
