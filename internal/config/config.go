package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/quantum-lab/internal/modules/simulator"
)

// Config holds application configuration
type Config struct {
	DatabasePath        string
	LogLevel            string
	Port                int
	DevMode             bool
	MaxQubits           int     // register width ceiling (state space is 2^n)
	EntropyThreshold    float64 // minimum bits-per-byte for nominal health
	EntropyWindow       int     // samples kept per entropy window
	FraudDefaultNu      float64 // default contamination fraction
	KernelWorkers       int     // 0 = GOMAXPROCS
	EntropyAuditEnabled bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnvAsInt("GO_PORT", 8001),
		DevMode:             getEnvAsBool("DEV_MODE", false),
		DatabasePath:        getEnv("DATABASE_PATH", "./data/quantumlab.db"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		MaxQubits:           getEnvAsInt("MAX_QUBITS", simulator.DefaultMaxQubits),
		EntropyThreshold:    getEnvAsFloat("ENTROPY_MIN_BITS_PER_BYTE", 7.0),
		EntropyWindow:       getEnvAsInt("ENTROPY_WINDOW", 4096),
		FraudDefaultNu:      getEnvAsFloat("FRAUD_DEFAULT_NU", 0.13),
		KernelWorkers:       getEnvAsInt("KERNEL_WORKERS", 0),
		EntropyAuditEnabled: getEnvAsBool("ENTROPY_AUDIT_ENABLED", true),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.MaxQubits < 1 {
		return fmt.Errorf("MAX_QUBITS must be at least 1, got %d", c.MaxQubits)
	}
	if c.MaxQubits > simulator.DefaultMaxQubits {
		// State space grows as 2^n; anything past the ceiling needs a sparse
		// representation this simulator does not have.
		return fmt.Errorf("MAX_QUBITS must be <= %d, got %d", simulator.DefaultMaxQubits, c.MaxQubits)
	}
	if c.FraudDefaultNu <= 0 || c.FraudDefaultNu >= 1 {
		return fmt.Errorf("FRAUD_DEFAULT_NU must be in (0, 1), got %g", c.FraudDefaultNu)
	}
	if c.EntropyThreshold < 0 || c.EntropyThreshold > 8 {
		return fmt.Errorf("ENTROPY_MIN_BITS_PER_BYTE must be in [0, 8], got %g", c.EntropyThreshold)
	}
	if c.EntropyWindow < 64 {
		return fmt.Errorf("ENTROPY_WINDOW must be at least 64, got %d", c.EntropyWindow)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
