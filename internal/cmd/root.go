// Package cmd wires the bankgen CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	verbose bool
	noColor bool
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bankgen",
	Short: "Rule-driven synthetic banking data generator",
	Long: `bankgen generates synthetic customer profiles and transaction streams
for testing data pipelines, without touching real customer data.

Field generation is driven by a rule table: either the built-in default
rules or an Excel workbook with a "field_req" sheet plus optional catalog
sheets (occu, state, acc_type, channel). Balances follow a fixed
per-account-type policy; transactions are Poisson-distributed per profile.
Given the same seed, runs are byte-identical.

Fixed policy values (balance ranges, tenure curve, transaction window)
live in internal/config/defaults.go - edit and recompile.

Example usage:
  bankgen generate --profiles 100000 --seed 42
  bankgen generate --rules rules.xlsx --enable-mcar
  bankgen load --db "user:pass@tcp(localhost:3306)/bank"`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and animations")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./bankgen.yaml)")

	rootCmd.SilenceUsage = true
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig reads an optional config file and environment overrides.
// Flags still win: commands bind their flags over these values.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bankgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("BANKGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
