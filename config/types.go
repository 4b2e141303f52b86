package config

// TokenConfig tunes the supply ledger.
type TokenConfig struct {
	Symbol string `toml:"Symbol"`
	// MaxSupply is a base-10 amount in base units. It may lower the built-in
	// cap but never raise it.
	MaxSupply string `toml:"MaxSupply,omitempty"`
	// HoldingAccount funds vesting releases and reward payouts. Empty selects
	// the derived system account.
	HoldingAccount string `toml:"HoldingAccount,omitempty"`
}

// RegistryConfig tunes the content registry.
type RegistryConfig struct {
	FeeBps        uint32 `toml:"FeeBps"`
	FeeRecipient  string `toml:"FeeRecipient,omitempty"`
	EscrowAccount string `toml:"EscrowAccount,omitempty"`
}

// LogConfig controls the structured log sink.
type LogConfig struct {
	Level      string `toml:"Level"`
	File       string `toml:"File,omitempty"`
	MaxSizeMB  int    `toml:"MaxSizeMB,omitempty"`
	MaxBackups int    `toml:"MaxBackups,omitempty"`
	MaxAgeDays int    `toml:"MaxAgeDays,omitempty"`
}

// TelemetryConfig controls OTLP trace export. Traces stay in-process when
// disabled.
type TelemetryConfig struct {
	Traces   bool   `toml:"Traces"`
	Endpoint string `toml:"Endpoint,omitempty"`
	Insecure bool   `toml:"Insecure,omitempty"`
	// Headers is a comma separated key=value list sent with every export.
	Headers string `toml:"Headers,omitempty"`
}
