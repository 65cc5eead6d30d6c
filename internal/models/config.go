package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Market   MarketConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SeedSampleData  bool
}

// MarketConfig holds market price cache settings
type MarketConfig struct {
	SeedFile string
}

// ExportConfig holds flat-file export settings
type ExportConfig struct {
	Path string
}
