package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the generator.
type Config struct {
	// Data generation settings
	Generate GenerateConfig `mapstructure:"generate"`

	// MCAR missingness settings
	MCAR MCARConfig `mapstructure:"mcar"`

	// Database settings for the load command
	Database DatabaseConfig `mapstructure:"database"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// GenerateConfig holds data generation settings.
type GenerateConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// Path to the rules workbook; empty uses the built-in rule set
	RulesPath string `mapstructure:"rules_path"`

	// Output directory for generated CSV files
	OutputDir string `mapstructure:"output_dir"`

	// Number of customer profiles to generate
	NumProfiles int `mapstructure:"num_profiles"`

	// Poisson mean for transactions per profile
	AvgTransactions float64 `mapstructure:"avg_transactions"`

	// Identifier rendering: "numeric" (prefix + zero-padded digits) or
	// "token" (prefix + fixed-length alphanumeric)
	IDStyle string `mapstructure:"id_style"`

	// Enable xz compression of output files
	Compress bool `mapstructure:"compress"`

	// Parallelism for transaction generation (0 = auto-detect CPUs)
	NumWorkers int `mapstructure:"num_workers"`
}

// MCARConfig holds missingness injection settings.
type MCARConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Per-column injection probabilities in [0, 1]
	OccupationRate  float64 `mapstructure:"occupation_rate"`
	AccountTypeRate float64 `mapstructure:"account_type_rate"`
	AgeRate         float64 `mapstructure:"age_rate"`
}

// DatabaseConfig holds MySQL connection settings for bulk loading.
type DatabaseConfig struct {
	// Connection string: user:password@tcp(host:port)/database
	DSN string `mapstructure:"dsn"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Identifier styles.
const (
	IDStyleNumeric = "numeric"
	IDStyleToken   = "token"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Seed:            0,
			OutputDir:       "./output",
			NumProfiles:     1000,
			AvgTransactions: AvgTransactionsPerProfile,
			IDStyle:         IDStyleNumeric,
			NumWorkers:      0,
		},
		MCAR: MCARConfig{
			Enabled:         false,
			OccupationRate:  DefaultMCAROccupationRate,
			AccountTypeRate: DefaultMCARAccountTypeRate,
			AgeRate:         DefaultMCARAgeRate,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Verbose: false,
	}
}

// Load reads configuration from viper into a Config struct.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if c.Generate.NumProfiles <= 0 {
		errs = append(errs, "generate.num_profiles must be positive")
	}
	if c.Generate.AvgTransactions <= 0 {
		errs = append(errs, "generate.avg_transactions must be positive")
	}
	if c.Generate.IDStyle != IDStyleNumeric && c.Generate.IDStyle != IDStyleToken {
		errs = append(errs, fmt.Sprintf("generate.id_style must be %q or %q", IDStyleNumeric, IDStyleToken))
	}
	if c.Generate.NumWorkers < 0 {
		errs = append(errs, "generate.num_workers must be non-negative")
	}

	for name, rate := range map[string]float64{
		"mcar.occupation_rate":   c.MCAR.OccupationRate,
		"mcar.account_type_rate": c.MCAR.AccountTypeRate,
		"mcar.age_rate":          c.MCAR.AgeRate,
	} {
		if rate < 0 || rate > 1 {
			errs = append(errs, fmt.Sprintf("%s must be between 0.0 and 1.0", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
