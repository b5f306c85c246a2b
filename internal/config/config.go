package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port     int
	APIKey   string
	LogLevel string
	LogFmt   string
	LogDir   string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// LedgerBackend selects the uniqueness ledger store: "postgres" or "memory".
	// Memory is for local development only; it does not survive restarts.
	LedgerBackend string

	CatalogPath string

	// Event system settings; zero values fall back to bootstrap defaults
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Chain listener settings
	ChainRPCURL     string
	NetworkID       int64
	ContractAddress string
	PollInterval    time.Duration
	ChunkSize       int64
	LookbackWindow  int64
	MintTimeout     time.Duration
	MintMaxRetries  int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:          getEnv("API_KEY", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFmt:          getEnv("LOG_FORMAT", "text"),
		LogDir:          getEnv("LOG_DIR", "logs"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "packforge"),
		LedgerBackend:   getEnv("LEDGER_BACKEND", LedgerBackendPostgres),
		CatalogPath:     getEnv("CATALOG_PATH", DefaultCatalogPath),
		ChainRPCURL:     getEnv("CHAIN_RPC_URL", ""),
		ContractAddress: getEnv("CONTRACT_ADDRESS", ""),

		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.NetworkID, err = getEnvInt64("NETWORK_ID", DefaultNetworkID); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getEnvInt64("SYNC_CHUNK_SIZE", DefaultChunkSize); err != nil {
		return nil, err
	}
	if cfg.LookbackWindow, err = getEnvInt64("SYNC_LOOKBACK", DefaultLookbackWindow); err != nil {
		return nil, err
	}
	if cfg.MintMaxRetries, err = getEnvInt("MINT_MAX_RETRIES", DefaultMintMaxRetries); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getEnvDuration("POLL_INTERVAL", DefaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.MintTimeout, err = getEnvDuration("MINT_TIMEOUT", DefaultMintTimeout); err != nil {
		return nil, err
	}
	if cfg.EventMaxRetries, err = getEnvInt("EVENT_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.EventRetryDelay, err = getEnvDuration("EVENT_RETRY_DELAY", 0); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.LedgerBackend != LedgerBackendPostgres && c.LedgerBackend != LedgerBackendMemory {
		return fmt.Errorf("invalid LEDGER_BACKEND %q: must be %q or %q",
			c.LedgerBackend, LedgerBackendPostgres, LedgerBackendMemory)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("SYNC_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.LookbackWindow < 0 {
		return fmt.Errorf("SYNC_LOOKBACK must be non-negative, got %d", c.LookbackWindow)
	}
	if c.MintMaxRetries < 1 {
		return fmt.Errorf("MINT_MAX_RETRIES must be at least 1, got %d", c.MintMaxRetries)
	}
	if c.MintTimeout <= 0 {
		return fmt.Errorf("MINT_TIMEOUT must be positive, got %s", c.MintTimeout)
	}
	return nil
}

// ListenerEnabled reports whether the on-chain fulfillment listener should run.
// Local setups without a chain gateway leave CHAIN_RPC_URL empty and only use
// the direct pack-open path.
func (c *Config) ListenerEnabled() bool {
	return c.ChainRPCURL != "" && c.ContractAddress != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
