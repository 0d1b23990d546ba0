package config

import "github.com/gaze-network/tzbot/internal/postgres"

type Config struct {
	Database    string          `mapstructure:"database"` // Database to store the tip ledger e.g. `postgres`
	Postgres    postgres.Config `mapstructure:"postgres"`
	APIHandlers []string        `mapstructure:"api_handlers"` // e.g. `http`

	Wallet       string `mapstructure:"wallet"`        // Keychain key name used to send tips
	Fee          int64  `mapstructure:"fee"`           // Fee in mutez attached to every tip
	GasMargin    int64  `mapstructure:"gas_margin"`    // Added to the simulated consumed gas. Default is 100
	StorageLimit int64  `mapstructure:"storage_limit"` // Default is 0, enough for transfers to allocated implicit accounts
}
