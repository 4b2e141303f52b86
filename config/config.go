package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"connectsphere/crypto"

	"github.com/BurntSushi/toml"
)

const (
	DatabaseLevelDB = "leveldb"
	DatabaseBolt    = "bbolt"
	DatabaseMemory  = "memory"

	holdingLabel = "holding"
	escrowLabel  = "license-escrow"
)

type Config struct {
	DataDir        string          `toml:"DataDir"`
	Database       string          `toml:"Database"`
	GenesisFile    string          `toml:"GenesisFile"`
	Environment    string          `toml:"Environment"`
	MetricsAddress string          `toml:"MetricsAddress"`
	Log            LogConfig       `toml:"log"`
	Token          TokenConfig     `toml:"token"`
	Registry       RegistryConfig  `toml:"registry"`
	Telemetry      TelemetryConfig `toml:"telemetry"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		DataDir:        "./csp-data",
		Database:       DatabaseLevelDB,
		GenesisFile:    "",
		Environment:    "local",
		MetricsAddress: "127.0.0.1:9102",
		Log:            LogConfig{Level: "info"},
		Token:          TokenConfig{Symbol: "CSP"},
		Registry:       RegistryConfig{FeeBps: 250},
	}
}

// Load loads the configuration from the given path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s has unknown field %s", path, undecoded[0].String())
	}

	cfg.Database = strings.ToLower(strings.TrimSpace(cfg.Database))
	if cfg.Database == "" {
		cfg.Database = DatabaseLevelDB
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := Default()
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// HoldingAccount resolves the configured holding account, falling back to the
// derived system account.
func (c *Config) HoldingAccount() ([20]byte, error) {
	return accountOrSystem(c.Token.HoldingAccount, holdingLabel)
}

// EscrowAccount resolves the license escrow account, falling back to the
// derived system account.
func (c *Config) EscrowAccount() ([20]byte, error) {
	return accountOrSystem(c.Registry.EscrowAccount, escrowLabel)
}

// FeeRecipient resolves the configured fee recipient. ok is false when none
// is configured.
func (c *Config) FeeRecipient() (addr [20]byte, ok bool, err error) {
	value := strings.TrimSpace(c.Registry.FeeRecipient)
	if value == "" {
		return addr, false, nil
	}
	addr, err = crypto.ParseAccount(value)
	if err != nil {
		return addr, false, fmt.Errorf("registry.FeeRecipient: %w", err)
	}
	return addr, true, nil
}

// MaxSupply parses the configured supply cap. A nil result means the
// built-in cap applies.
func (c *Config) MaxSupply() (*big.Int, error) {
	value := strings.TrimSpace(c.Token.MaxSupply)
	if value == "" {
		return nil, nil
	}
	limit, ok := new(big.Int).SetString(value, 10)
	if !ok || limit.Sign() <= 0 {
		return nil, fmt.Errorf("token.MaxSupply: invalid amount %q", value)
	}
	return limit, nil
}

func accountOrSystem(value, label string) ([20]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return crypto.SystemAccount(label), nil
	}
	return crypto.ParseAccount(value)
}
