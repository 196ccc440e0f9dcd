package config

import (
	"fmt"
	"os"
	"path/filepath"

	"retirecast/internal/tax"

	"github.com/BurntSushi/toml"
)

// App holds the retirecast application configuration (TOML).
type App struct {
	General GeneralConfig          `toml:"general"`
	Store   StoreConfig            `toml:"store"`
	Tables  map[string]TableConfig `toml:"tables"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ScenarioDir string `toml:"scenario_dir,omitempty"`
	Quiet       bool   `toml:"quiet"`
	NoSave      bool   `toml:"no_save"`
}

// StoreConfig holds run-store settings.
type StoreConfig struct {
	Path string `toml:"path,omitempty"`
}

// TableConfig overrides the built-in tax tables for one filing status.
// Keys of App.Tables are filing-status names ("single", "married-joint", ...).
type TableConfig struct {
	StandardDeduction *float64  `toml:"standard_deduction,omitempty"`
	BracketLimits     []float64 `toml:"bracket_limits,omitempty"`
	CapGainsLimits    []float64 `toml:"cap_gains_limits,omitempty"`
	IRMAATier0        *float64  `toml:"irmaa_tier_0,omitempty"`
}

// DefaultApp returns the default application configuration.
func DefaultApp() App {
	return App{}
}

// AppDir returns the XDG-compliant config directory.
func AppDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "retirecast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "retirecast")
}

// AppPath returns the full path to the config file.
func AppPath() string {
	return filepath.Join(AppDir(), "config.toml")
}

// LoadApp reads the config file, returning defaults if it doesn't exist.
func LoadApp() (App, error) {
	return LoadAppFrom(AppPath())
}

// LoadAppFrom reads a config file from an explicit path.
func LoadAppFrom(path string) (App, error) {
	cfg := DefaultApp()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// StorePath resolves the run-store location: config override first, then the
// XDG data path.
func (a App) StorePath() string {
	if a.Store.Path != "" {
		return a.Store.Path
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "retirecast", "runs.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "retirecast", "runs.db")
}

// Profiles returns the built-in profile tables with any [tables.<status>]
// overrides from the config applied.
func (a App) Profiles() map[tax.FilingStatus]tax.Profile {
	profiles := tax.DefaultProfiles()
	for name, tbl := range a.Tables {
		status := tax.FilingStatus(name)
		p, ok := profiles[status]
		if !ok {
			continue
		}
		pc := ProfileConfig{
			BracketLimits:  tbl.BracketLimits,
			CapGainsLimits: tbl.CapGainsLimits,
		}
		if tbl.StandardDeduction != nil {
			pc.StandardDeduction = *tbl.StandardDeduction
		}
		if tbl.IRMAATier0 != nil {
			pc.IRMAATier0 = *tbl.IRMAATier0
		}
		profiles[status] = pc.ApplyTo(p)
	}
	return profiles
}
