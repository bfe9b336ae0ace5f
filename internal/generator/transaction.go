package generator

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/data"
	"github.com/synthdata/bankgen/internal/models"
	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/utils"
)

// TransactionAssembler emits one transaction stream per profile. Streams
// are statistically independent, so generation parallelizes across
// profiles; each profile's stream is seeded by its index, which makes the
// output identical whatever the worker count.
//
// Transaction identifiers are assigned in a second, sequential pass
// (AssignTransactionIDs) so the uniqueness set never needs cross-worker
// locking.
type TransactionAssembler struct {
	channels     []string
	names        data.CounterpartyData
	counterparty IDFormat
	avgTxn       float64
	base         *utils.Random
}

// NewTransactionAssembler resolves the channel catalog and counterparty
// name parts up front so per-transaction sampling is lookup-free.
func NewTransactionAssembler(catalogs rules.Catalogs, ref *data.ReferenceData, base *utils.Random, idStyle string, avgTxn float64) (*TransactionAssembler, error) {
	channels, err := catalogs.Get(rules.CatalogChannel)
	if err != nil {
		return nil, err
	}
	if avgTxn < 1 {
		avgTxn = 1
	}

	// Counterparty accounts reuse the account-id format but skip the
	// uniqueness set: counterparties are external accounts, collisions are
	// realistic and harmless.
	cp := IDFormat{Prefix: config.AccountIDPrefix, Style: config.IDStyleNumeric, Width: 14}
	if idStyle == config.IDStyleToken {
		cp = IDFormat{Prefix: config.AccountTokenPrefix, Style: config.IDStyleToken, Width: config.AccountTokenWidth}
	}

	return &TransactionAssembler{
		channels:     channels,
		names:        ref.Counterparties,
		counterparty: cp,
		avgTxn:       avgTxn,
		base:         base,
	}, nil
}

// GenerateStreams produces the per-profile transaction streams, in profile
// order, across numWorkers goroutines. Transaction IDs are left empty;
// call AssignTransactionIDs before writing output.
func (a *TransactionAssembler) GenerateStreams(profiles []*models.Profile, numWorkers int) ([][]*models.Transaction, error) {
	streams := make([][]*models.Transaction, len(profiles))
	if len(profiles) == 0 {
		return streams, nil
	}

	parts := partitionRange(len(profiles), GetWorkerCount(numWorkers))
	var wg sync.WaitGroup
	for _, part := range parts {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				rng := a.base.ForkAt(int64(i))
				streams[i] = a.generateStream(profiles[i], rng)
			}
		}(part[0], part[1])
	}
	wg.Wait()

	return streams, nil
}

// generateStream draws one profile's transactions from its dedicated
// random stream. Count is Poisson with a floor of one: every account has
// seen at least one transaction.
func (a *TransactionAssembler) generateStream(p *models.Profile, rng *utils.Random) []*models.Transaction {
	count := rng.Poisson(a.avgTxn)
	if count < 1 {
		count = 1
	}

	windowSecs := int64(config.TxnWindowEnd.Sub(config.TxnWindowStart) / time.Second)
	txns := make([]*models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		ts := config.TxnWindowStart.Add(time.Duration(rng.Int64N(windowSecs)) * time.Second)
		cents := rng.Int64Range(config.TxnAmountMinCents, config.TxnAmountMaxCents)

		ttype := models.TxDebit
		if rng.Bool() {
			ttype = models.TxCredit
		}

		txns = append(txns, &models.Transaction{
			AccountID:           p.AccountID,
			Timestamp:           ts,
			Amount:              decimal.New(cents, -2),
			Type:                ttype,
			Channel:             rng.PickString(a.channels),
			CounterpartyName:    a.counterpartyName(rng),
			CounterpartyAccount: a.counterparty.Render(rng),
		})
	}
	return txns
}

// counterpartyName samples a personal name most of the time and a business
// name for the rest.
func (a *TransactionAssembler) counterpartyName(rng *utils.Random) string {
	if rng.Probability(config.PersonalCounterpartyRatio) {
		return rng.PickString(a.names.FirstNames) + " " + rng.PickString(a.names.LastNames)
	}
	return rng.PickString(a.names.CompanyPrefixes) + " " + rng.PickString(a.names.CompanySuffixes)
}

// AssignTransactionIDs fills in unique transaction identifiers, walking
// the streams in profile order from a single sequential allocator. The
// allocator is sized with the exact transaction count so exhaustion
// surfaces here, before any output is written.
func AssignTransactionIDs(streams [][]*models.Transaction, rng *utils.Random, idStyle string) error {
	total := 0
	for _, s := range streams {
		total += len(s)
	}

	format := IDFormat{Prefix: config.TransactionIDPrefix, Style: config.IDStyleNumeric, Width: config.TransactionIDDigits}
	if idStyle == config.IDStyleToken {
		format = IDFormat{Prefix: config.TransactionTokenPrefix, Style: config.IDStyleToken, Width: config.TransactionTokenWidth}
	}

	alloc, err := NewIDAllocator("Transaction_ID", format, rng, total)
	if err != nil {
		return err
	}
	for _, stream := range streams {
		for _, txn := range stream {
			txn.TransactionID = alloc.Next()
		}
	}
	return nil
}

// TransactionHeaders is the fixed transaction CSV column order.
func TransactionHeaders() []string {
	return []string{
		"Customer_Acc",
		"Transaction_ID",
		"Timestamp",
		"Amount",
		"Type",
		"Channel",
		"Counterparty_Name",
		"Counterparty_Account",
	}
}

// TransactionRow renders one transaction in header order.
func TransactionRow(t *models.Transaction) []string {
	return []string{
		t.AccountID,
		t.TransactionID,
		FormatTimestamp(t.Timestamp),
		t.Amount.StringFixed(2),
		string(t.Type),
		t.Channel,
		t.CounterpartyName,
		t.CounterpartyAccount,
	}
}

// WriteTransactionsCSV streams every stream's transactions to the writer
// in profile order.
func WriteTransactionsCSV(streams [][]*models.Transaction, writer *CSVWriter) error {
	for _, stream := range streams {
		for _, txn := range stream {
			if txn.TransactionID == "" {
				return fmt.Errorf("transaction for account %s has no identifier; AssignTransactionIDs was not run", txn.AccountID)
			}
			if err := writer.WriteRow(TransactionRow(txn)); err != nil {
				return err
			}
		}
	}
	return nil
}
