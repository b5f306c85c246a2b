package config

import "time"

// Ledger backend selectors
const (
	LedgerBackendPostgres = "postgres"
	LedgerBackendMemory   = "memory"
)

// Config file paths
const (
	DefaultCatalogPath = "configs/cards.json"
)

// Listener defaults
const (
	// DefaultNetworkID is the chain the contract is deployed on
	DefaultNetworkID int64 = 137

	// DefaultChunkSize bounds how many log positions one event-log read spans.
	// Public gateways reject wider ranges.
	DefaultChunkSize int64 = 2000

	// DefaultLookbackWindow bounds the historical replay on a fresh cursor:
	// the first cycle starts at head minus this many positions, not genesis.
	DefaultLookbackWindow int64 = 10000

	DefaultPollInterval = 15 * time.Second

	// DefaultMintTimeout caps one mint call so a stuck gateway cannot stall
	// the poll loop indefinitely
	DefaultMintTimeout = 90 * time.Second

	DefaultMintMaxRetries = 3
)

// Database pool defaults
const (
	DefaultDBMaxConns    = 10
	DefaultDBMaxIdleTime = 30 * time.Minute
	DefaultDBMaxLifetime = time.Hour
)
