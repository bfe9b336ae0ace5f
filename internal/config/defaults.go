// Package config contains compile-time defaults for the synthetic data
// generator. Edit these values and recompile to tune behavior.
package config

import "time"

// =============================================================================
// BALANCE MODEL
// =============================================================================

// BalanceRange is a closed [Low, High] balance interval for one account type.
type BalanceRange struct {
	Low  int64
	High int64
}

// BalanceRangesByAccountType is the fixed balance policy keyed by account
// type. Unknown account types use DefaultBalanceRange.
var BalanceRangesByAccountType = map[string]BalanceRange{
	"GIA":       {Low: 5_000, High: 150_000},
	"GIA AWFAR": {Low: 10_000, High: 200_000},
	"Al-AWFAR":  {Low: 2_000, High: 80_000},
	"IHSAN":     {Low: 500, High: 20_000},
	"STDT":      {Low: 20_000, High: 100_000},
}

// DefaultBalanceRange applies to account types missing from the table.
var DefaultBalanceRange = BalanceRange{Low: 2_000, High: 80_000}

// Minor balance policy
const (
	// AdultAge is the age at which the minor balance cap stops applying.
	AdultAge = 18

	// MinorBalanceCeiling caps balances for profiles under AdultAge.
	MinorBalanceCeiling = 8_000

	// MinorBalanceFloor is the redraw floor used when an account type's
	// low bound itself exceeds the minor ceiling.
	MinorBalanceFloor = 100
)

// TenureBreakpoint maps account tenure in months to the average-balance
// ratio at that tenure. Ratios between breakpoints are linearly
// interpolated; ratios are monotonically non-decreasing.
type TenureBreakpoint struct {
	Months int
	Ratio  float64
}

// TenureRatioBreakpoints defines how close the average balance sits to the
// current balance as the account ages.
var TenureRatioBreakpoints = []TenureBreakpoint{
	{Months: 0, Ratio: 0.35},
	{Months: 12, Ratio: 0.55},
	{Months: 36, Ratio: 0.72},
	{Months: 72, Ratio: 0.84},
	{Months: 120, Ratio: 0.90},
	{Months: 180, Ratio: 0.92},
}

// Average-balance ratio and noise bounds
const (
	// TenureRatioMin / TenureRatioMax clamp the interpolated ratio.
	TenureRatioMin = 0.25
	TenureRatioMax = 0.92

	// AvgBalanceNoise is the half-width of the uniform noise applied to
	// the average balance (±3%).
	AvgBalanceNoise = 0.03
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// Identifier column formats. Width is the digit count for the numeric
// style; TokenWidth is the total identifier length (prefix included) for
// the token style, matching the legacy fixed-length identifiers.
const (
	CustomerIDPrefix    = "cust_"
	AccountIDPrefix     = "acc_"
	TransactionIDPrefix = "txn_"

	CustomerTokenPrefix    = "CUST_"
	AccountTokenPrefix     = "CACC_"
	TransactionTokenPrefix = "TXN_"

	CustomerTokenWidth    = 10
	AccountTokenWidth     = 12
	TransactionTokenWidth = 15

	TransactionIDDigits = 12
)

// =============================================================================
// TRANSACTIONS
// =============================================================================

// Transaction generation window (UTC). Timestamps are drawn uniformly
// over [TxnWindowStart, TxnWindowEnd).
var (
	TxnWindowStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	TxnWindowEnd   = time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC)
)

// Transaction amounts in cents; drawn uniformly then rendered with two
// decimal places.
const (
	TxnAmountMinCents = 100_00
	TxnAmountMaxCents = 1_000_000_00
)

const (
	// AvgTransactionsPerProfile is the default Poisson mean for the
	// per-profile transaction count.
	AvgTransactionsPerProfile = 15

	// PersonalCounterpartyRatio is the fraction of counterparties labelled
	// with a personal name; the rest get a business name.
	PersonalCounterpartyRatio = 0.8
)

// =============================================================================
// MISSINGNESS (MCAR)
// =============================================================================

// Default per-column MCAR rates, applied when missingness is enabled.
const (
	DefaultMCAROccupationRate  = 0.08
	DefaultMCARAccountTypeRate = 0.01
	DefaultMCARAgeRate         = 0.02
)
