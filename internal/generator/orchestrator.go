package generator

import (
	"fmt"
	"time"

	"github.com/synthdata/bankgen/internal/data"
	"github.com/synthdata/bankgen/internal/models"
	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/utils"
)

// Orchestrator coordinates a full generation run: rule loading, profile
// assembly, transaction streams, missingness injection and CSV output.
type Orchestrator struct {
	rng      *utils.Random
	refData  *data.ReferenceData
	ruleSet  *rules.RuleSet
	catalogs rules.Catalogs
	policy   *MissingnessPolicy
	config   OrchestratorConfig

	verbose      bool
	showProgress bool
}

// OrchestratorConfig holds settings for one generation run.
type OrchestratorConfig struct {
	NumProfiles     int
	AvgTransactions float64
	Seed            int64
	RulesPath       string
	OutputDir       string
	IDStyle         string
	Compress        bool
	Workers         int

	// MCAR missingness; rates keyed by output column name.
	MCAREnabled bool
	MCARRates   map[string]float64
}

// GenerationResult holds statistics from a generation run.
type GenerationResult struct {
	ProfileCount     int
	TransactionCount int
	ProfilePath      string
	TransactionPath  string
	Seed             uint64
	Duration         time.Duration
}

// OrchestratorOptions holds optional settings for the orchestrator.
type OrchestratorOptions struct {
	Verbose      bool
	ShowProgress bool
}

// NewOrchestrator validates configuration up front: rules are parsed, the
// workbook (if any) is loaded, catalogs resolve, and the missingness
// policy is checked against the protected columns. Generation cannot fail
// on configuration after this returns.
func NewOrchestrator(config OrchestratorConfig, opts OrchestratorOptions) (*Orchestrator, error) {
	refData, err := data.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	var ruleSet *rules.RuleSet
	var catalogs rules.Catalogs
	if config.RulesPath != "" {
		ruleSet, catalogs, err = rules.LoadWorkbook(config.RulesPath)
		if err != nil {
			return nil, err
		}
	} else {
		ruleSet = rules.DefaultRuleSet()
		catalogs, err = rules.ResolveCatalogs(nil)
		if err != nil {
			return nil, err
		}
		if err := ruleSet.Validate(catalogs); err != nil {
			return nil, err
		}
	}

	var policy *MissingnessPolicy
	if config.MCAREnabled {
		policy, err = NewMissingnessPolicy(config.MCARRates)
		if err != nil {
			return nil, err
		}
	}

	if config.Compress {
		if err := CheckXZAvailable(); err != nil {
			return nil, err
		}
	}

	return &Orchestrator{
		rng:          utils.NewRandom(config.Seed),
		refData:      refData,
		ruleSet:      ruleSet,
		catalogs:     catalogs,
		policy:       policy,
		config:       config,
		verbose:      opts.Verbose,
		showProgress: opts.ShowProgress,
	}, nil
}

// RuleSet returns the rule table this run will generate from.
func (o *Orchestrator) RuleSet() *rules.RuleSet {
	return o.ruleSet
}

// Catalogs returns the resolved reference catalogs.
func (o *Orchestrator) Catalogs() rules.Catalogs {
	return o.catalogs
}

// Generate runs the full pipeline and writes both CSV files. The fork
// order below is fixed: changing it changes every seeded run's output.
func (o *Orchestrator) Generate() (*GenerationResult, error) {
	startTime := time.Now()
	result := &GenerationResult{Seed: o.rng.Seed()}

	profileRNG := o.rng.Fork()
	txnBase := o.rng.Fork()
	txnIDRNG := o.rng.Fork()
	mcarRNG := o.rng.Fork()

	// 1. Assemble profiles
	o.log("Generating %d profiles...", o.config.NumProfiles)
	assembler, err := NewProfileAssembler(o.ruleSet, o.catalogs, profileRNG, o.config.IDStyle, o.config.NumProfiles)
	if err != nil {
		return nil, err
	}

	profiles, err := o.assembleProfiles(assembler)
	if err != nil {
		return nil, err
	}
	result.ProfileCount = len(profiles)
	o.log("  Generated %d profiles", result.ProfileCount)

	// 2. Generate transaction streams in parallel, then assign IDs
	// sequentially so output is identical whatever the worker count.
	workerCount := GetWorkerCount(o.config.Workers)
	o.log("Generating transactions using %d workers...", workerCount)
	txnAssembler, err := NewTransactionAssembler(o.catalogs, o.refData, txnBase, o.config.IDStyle, o.config.AvgTransactions)
	if err != nil {
		return nil, err
	}
	streams, err := txnAssembler.GenerateStreams(profiles, workerCount)
	if err != nil {
		return nil, err
	}
	if err := AssignTransactionIDs(streams, txnIDRNG, o.config.IDStyle); err != nil {
		return nil, err
	}
	for _, s := range streams {
		result.TransactionCount += len(s)
	}
	o.log("  Generated %d transactions", result.TransactionCount)

	// 3. Inject missingness over the profile table only
	if o.policy != nil {
		o.log("Injecting missing values (%d policed columns)...", len(o.policy.Fields()))
		InjectMissing(profiles, o.policy, mcarRNG)
	}

	// 4. Write output
	datestamp := time.Now().UTC().Format("20060102")

	profileWriter, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: o.config.OutputDir,
		Filename:  "CUSTOMER_PROFILE_" + datestamp,
		Headers:   ProfileHeaders(o.ruleSet),
		Compress:  o.config.Compress,
	})
	if err != nil {
		return nil, err
	}
	if err := WriteProfilesCSV(profiles, o.ruleSet, profileWriter); err != nil {
		profileWriter.Close()
		return nil, fmt.Errorf("failed to write profiles CSV: %w", err)
	}
	if err := profileWriter.Close(); err != nil {
		return nil, err
	}
	result.ProfilePath = profileWriter.Path()
	o.log("  Wrote %s", result.ProfilePath)

	txnWriter, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: o.config.OutputDir,
		Filename:  "CUSTOMER_TXN_" + datestamp,
		Headers:   TransactionHeaders(),
		Compress:  o.config.Compress,
	})
	if err != nil {
		return nil, err
	}
	if err := WriteTransactionsCSV(streams, txnWriter); err != nil {
		txnWriter.Close()
		return nil, fmt.Errorf("failed to write transactions CSV: %w", err)
	}
	if err := txnWriter.Close(); err != nil {
		return nil, err
	}
	result.TransactionPath = txnWriter.Path()
	o.log("  Wrote %s", result.TransactionPath)

	result.Duration = time.Since(startTime)
	return result, nil
}

// assembleProfiles runs the sequential profile loop, chunked so the
// progress display stays live on large runs.
func (o *Orchestrator) assembleProfiles(assembler *ProfileAssembler) ([]*models.Profile, error) {
	var progress *ProgressReporter
	if o.showProgress {
		progress = NewProgressReporter(ProgressConfig{
			Total: int64(o.config.NumProfiles),
			Label: "  Profiles",
		})
	}

	const chunk = 1000
	profiles := make([]*models.Profile, 0, o.config.NumProfiles)
	for len(profiles) < o.config.NumProfiles {
		n := o.config.NumProfiles - len(profiles)
		if n > chunk {
			n = chunk
		}
		batch, err := assembler.Assemble(n)
		if err != nil {
			if progress != nil {
				progress.Finish()
			}
			return nil, err
		}
		profiles = append(profiles, batch...)
		if progress != nil {
			progress.Set(int64(len(profiles)))
		}
	}
	if progress != nil {
		progress.Finish()
	}
	return profiles, nil
}

// log prints a message if verbose mode is enabled.
func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		fmt.Printf(format+"\n", args...)
	}
}
