package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/generator"
	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/ui"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic customer profiles and transactions",
	Long: `Generate synthetic banking data as two CSV files:

- CUSTOMER_PROFILE_YYYYMMDD.csv: one row per customer, columns driven by
  the rule table plus the derived Balance / Average_Balance pair
- CUSTOMER_TXN_YYYYMMDD.csv: a Poisson-distributed transaction stream
  per profile over the configured date window

Without --rules the built-in rule set is used. With --enable-mcar the
occupation, account type and age columns are independently nulled at the
configured rates; identifier and balance columns are never nulled.

Example:
  bankgen generate --profiles 100000 --seed 42
  bankgen generate --rules rules.xlsx --avg-txn 20 --enable-mcar
  bankgen generate --id-style token --compress`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.String("rules", "", "path to rules workbook (.xlsx); empty uses built-in rules")
	flags.Int("profiles", 1000, "number of customer profiles to generate")
	flags.Float64("avg-txn", config.AvgTransactionsPerProfile, "average transactions per profile (Poisson mean)")
	flags.Int64("seed", 0, "random seed for reproducibility (0 = random)")
	flags.String("output", "./output", "output directory for CSV files")
	flags.String("id-style", config.IDStyleNumeric, "identifier style: numeric or token")
	flags.Bool("compress", false, "compress output with xz (creates .csv.xz files)")
	flags.Int("workers", 0, "number of parallel workers (0 = auto-detect CPUs)")
	flags.Bool("enable-mcar", false, "inject missing values into the profile table")
	flags.Float64("mcar-rate-occ", config.DefaultMCAROccupationRate, "missingness rate for the occupation column")
	flags.Float64("mcar-rate-acctype", config.DefaultMCARAccountTypeRate, "missingness rate for the account type column")
	flags.Float64("mcar-rate-age", config.DefaultMCARAgeRate, "missingness rate for the age column")

	viper.BindPFlag("generate.rules_path", flags.Lookup("rules"))
	viper.BindPFlag("generate.num_profiles", flags.Lookup("profiles"))
	viper.BindPFlag("generate.avg_transactions", flags.Lookup("avg-txn"))
	viper.BindPFlag("generate.seed", flags.Lookup("seed"))
	viper.BindPFlag("generate.output_dir", flags.Lookup("output"))
	viper.BindPFlag("generate.id_style", flags.Lookup("id-style"))
	viper.BindPFlag("generate.compress", flags.Lookup("compress"))
	viper.BindPFlag("generate.num_workers", flags.Lookup("workers"))
	viper.BindPFlag("mcar.enabled", flags.Lookup("enable-mcar"))
	viper.BindPFlag("mcar.occupation_rate", flags.Lookup("mcar-rate-occ"))
	viper.BindPFlag("mcar.account_type_rate", flags.Lookup("mcar-rate-acctype"))
	viper.BindPFlag("mcar.age_rate", flags.Lookup("mcar-rate-age"))
}

func runGenerate(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	gen := cfg.Generate

	fmt.Println(u.Header("Synthetic Banking Data Generator"))
	fmt.Println()
	fmt.Println(u.KeyValue("Profiles", fmt.Sprintf("%d", gen.NumProfiles)))
	fmt.Println(u.KeyValue("Avg txns", fmt.Sprintf("%.1f per profile", gen.AvgTransactions)))
	if gen.RulesPath != "" {
		fmt.Println(u.KeyValue("Rules", gen.RulesPath))
	} else {
		fmt.Println(u.KeyValue("Rules", "built-in defaults"))
	}
	fmt.Println(u.KeyValue("ID style", gen.IDStyle))
	fmt.Println(u.KeyValue("Output", gen.OutputDir))
	if gen.Seed != 0 {
		fmt.Println(u.KeyValue("Seed", fmt.Sprintf("%d", gen.Seed)))
	}
	if cfg.MCAR.Enabled {
		fmt.Println(u.KeyValue("MCAR", fmt.Sprintf("occ %.2f / acctype %.2f / age %.2f",
			cfg.MCAR.OccupationRate, cfg.MCAR.AccountTypeRate, cfg.MCAR.AgeRate)))
	}
	if gen.Compress {
		fmt.Println(u.KeyValue("Compression", "xz (.csv.xz)"))
	}
	fmt.Println(u.KeyValue("Workers", fmt.Sprintf("%d", generator.GetWorkerCount(gen.NumWorkers))))
	fmt.Println()

	orchestrator, err := generator.NewOrchestrator(generator.OrchestratorConfig{
		NumProfiles:     gen.NumProfiles,
		AvgTransactions: gen.AvgTransactions,
		Seed:            gen.Seed,
		RulesPath:       gen.RulesPath,
		OutputDir:       gen.OutputDir,
		IDStyle:         gen.IDStyle,
		Compress:        gen.Compress,
		Workers:         gen.NumWorkers,
		MCAREnabled:     cfg.MCAR.Enabled,
		MCARRates: map[string]float64{
			rules.FieldOccupation:  cfg.MCAR.OccupationRate,
			rules.FieldAccountType: cfg.MCAR.AccountTypeRate,
			rules.FieldAge:         cfg.MCAR.AgeRate,
		},
	}, generator.OrchestratorOptions{
		Verbose:      verbose,
		ShowProgress: !verbose,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	result, err := orchestrator.Generate()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	printGenerateSummary(u, result)
	fmt.Println()
	fmt.Println(u.Success("Output files written to: " + gen.OutputDir))
}

func printGenerateSummary(u *ui.UI, result *generator.GenerationResult) {
	items := []ui.KV{
		{Key: "Profiles", Value: fmt.Sprintf("%d", result.ProfileCount)},
		{Key: "Transactions", Value: fmt.Sprintf("%d", result.TransactionCount)},
		{Key: "Seed", Value: fmt.Sprintf("%d", result.Seed)},
		{Key: "Duration", Value: result.Duration.Round(1e6).String()},
		{Key: "Status", Value: "Success"},
	}
	fmt.Println(u.SummaryBox("Generation Complete", items))
}
