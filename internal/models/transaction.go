package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of funds relative to the account.
type TransactionType string

const (
	TxCredit TransactionType = "credit"
	TxDebit  TransactionType = "debit"
)

// Transaction is one generated transaction in a profile's stream. The
// AccountID foreign-keys the owning profile; counterparties are sampled
// independently per transaction.
type Transaction struct {
	AccountID     string
	TransactionID string // prefixed, globally unique per run
	Timestamp     time.Time
	Amount        decimal.Decimal // strictly positive, 2dp
	Type          TransactionType
	Channel       string

	CounterpartyName    string
	CounterpartyAccount string
}
