package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/database"
	"github.com/synthdata/bankgen/internal/ui"
)

var loadInputDir string

// loadCmd bulk-imports generated CSVs into MySQL/MariaDB.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load generated CSV data into MySQL/MariaDB",
	Long: `Import the most recent generated CSV pair into a database using
LOAD DATA LOCAL INFILE. Handles both plain .csv and xz-compressed
.csv.xz files.

The customer_profiles table is created from the CSV header, so workbook-
driven extra columns load without schema changes. Missing markers in
nullable columns become SQL NULL.

Example:
  bankgen load --db "user:pass@tcp(localhost:3306)/bank"
  bankgen load --db "..." --input ./my-output`,
	Run: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	flags := loadCmd.Flags()
	flags.String("db", "", "database connection string (required)")
	flags.StringVar(&loadInputDir, "input", "./output", "input directory containing generated CSV files")
	flags.Int("db-max-open", 10, "max open database connections")
	flags.Int("db-max-idle", 10, "max idle database connections")

	loadCmd.MarkFlagRequired("db")

	viper.BindPFlag("database.dsn", flags.Lookup("db"))
	viper.BindPFlag("database.max_open_conns", flags.Lookup("db-max-open"))
	viper.BindPFlag("database.max_idle_conns", flags.Lookup("db-max-idle"))
}

func runLoad(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	profilePath, err := findLatest(loadInputDir, "CUSTOMER_PROFILE_")
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	txnPath, err := findLatest(loadInputDir, "CUSTOMER_TXN_")
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	fmt.Println(u.Header("Synthetic Banking Data Loader"))
	fmt.Println()
	fmt.Println(u.KeyValue("Database", database.MaskDSN(cfg.Database.DSN)))
	fmt.Println(u.KeyValue("Profiles", filepath.Base(profilePath)))
	fmt.Println(u.KeyValue("Transactions", filepath.Base(txnPath)))
	fmt.Println()

	pool, err := database.NewPool(cfg.Database)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	spin := u.NewSpinner("Connecting to database")
	spin.Start()
	if err := pool.Connect(ctx); err != nil {
		spin.Error(err.Error())
		os.Exit(1)
	}
	spin.Success("connected")

	loader := database.NewLoader(pool)
	if err := loader.DisableChecks(ctx); err != nil {
		fmt.Fprintln(os.Stderr, u.Error("failed to disable checks: "+err.Error()))
		os.Exit(1)
	}

	u.Section("Loading data...")
	startTime := time.Now()
	bar := u.NewProgressBar("Tables", 2)

	profileRows, err := loader.LoadProfiles(ctx, profilePath)
	if err != nil {
		bar.Fail(err)
		os.Exit(1)
	}
	bar.Update(1)

	txnRows, err := loader.LoadTransactions(ctx, txnPath)
	if err != nil {
		bar.Fail(err)
		os.Exit(1)
	}
	bar.Update(2)
	bar.Complete()

	if err := loader.EnableChecks(ctx); err != nil {
		fmt.Fprintln(os.Stderr, u.Error("failed to re-enable checks: "+err.Error()))
		os.Exit(1)
	}

	items := []ui.KV{
		{Key: "Profile rows", Value: fmt.Sprintf("%d", profileRows)},
		{Key: "Txn rows", Value: fmt.Sprintf("%d", txnRows)},
		{Key: "Duration", Value: time.Since(startTime).Round(time.Millisecond).String()},
		{Key: "Status", Value: "Success"},
	}
	fmt.Println(u.SummaryBox("Load Summary", items))
}

// findLatest returns the newest dated file matching prefix in dir,
// preferring compressed output when both forms exist for the same date.
func findLatest(dir, prefix string) (string, error) {
	var candidates []string
	for _, pattern := range []string{prefix + "*.csv", prefix + "*.csv.xz"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", err
		}
		candidates = append(candidates, matches...)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no %s*.csv files found in %s", prefix, dir)
	}
	// Datestamped names sort chronologically; .xz sorts after .csv for
	// the same date, which is the preference we want.
	sort.Strings(candidates)
	return candidates[len(candidates)-1], nil
}
