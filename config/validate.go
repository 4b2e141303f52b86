package config

import "fmt"

// MaxFeeBps mirrors the registry's fee ceiling.
const MaxFeeBps = 1000

// Validate rejects configurations the node cannot start with.
func (c *Config) Validate() error {
	switch c.Database {
	case DatabaseLevelDB, DatabaseBolt, DatabaseMemory:
	default:
		return fmt.Errorf("database: unsupported backend %q", c.Database)
	}
	if c.Database != DatabaseMemory && c.DataDir == "" {
		return fmt.Errorf("data dir: required for %s backend", c.Database)
	}
	if c.Registry.FeeBps > MaxFeeBps {
		return fmt.Errorf("registry: fee_bps %d exceeds %d", c.Registry.FeeBps, MaxFeeBps)
	}
	if _, err := c.HoldingAccount(); err != nil {
		return fmt.Errorf("token.HoldingAccount: %w", err)
	}
	if _, err := c.EscrowAccount(); err != nil {
		return fmt.Errorf("registry.EscrowAccount: %w", err)
	}
	if _, _, err := c.FeeRecipient(); err != nil {
		return err
	}
	if _, err := c.MaxSupply(); err != nil {
		return err
	}
	return nil
}
