// Package config loads and saves pacewatch settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"pacewatch/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all pacewatch configuration.
type Config struct {
	General    GeneralConfig  `toml:"general"`
	Budget     BudgetConfig   `toml:"budget"`
	Bank       BankConfig     `toml:"bank"`
	Categories CategoryConfig `toml:"categories"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	Timezone string `toml:"timezone,omitempty"`
	Currency string `toml:"currency"`
	Theme    string `toml:"theme,omitempty"`
}

// BudgetConfig holds the budgeting settings the core computes against.
type BudgetConfig struct {
	MonthlyTarget  decimal.Decimal `toml:"monthly_target"`
	SyncWindowDays int             `toml:"sync_window_days"`
}

// BankConfig holds bank bridge access settings. The access URL embeds
// the credential, so the config file is written 0600.
type BankConfig struct {
	AccessURL string `toml:"access_url,omitempty"`
}

// CategoryConfig maps merchant substrings to category labels, applied
// at the bank boundary before transactions reach the core.
type CategoryConfig struct {
	Rules map[string]string `toml:"rules,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "$",
		},
		Budget: BudgetConfig{
			SyncWindowDays: 7,
		},
	}
}

// Settings projects the config onto the core's settings type.
func (c Config) Settings() model.Settings {
	return model.Settings{
		MonthlyTarget:  c.Budget.MonthlyTarget,
		SyncWindowDays: c.Budget.SyncWindowDays,
		Timezone:       c.General.Timezone,
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pacewatch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pacewatch")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the ledger data directory: the configured override,
// or the XDG data directory.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pacewatch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pacewatch")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
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

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAccessURL returns the bank access URL from env var or config, in
// that order.
func GetAccessURL(cfg Config) string {
	if url := os.Getenv("PACEWATCH_ACCESS_URL"); url != "" {
		return url
	}
	return cfg.Bank.AccessURL
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
