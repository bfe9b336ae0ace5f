package generator

import (
	"strings"

	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/utils"
)

// BalanceModel derives the balance pair for a profile: a current balance
// drawn from the account type's range, and a tenure-aware average balance
// that always sits strictly below it.
type BalanceModel struct {
	rng *utils.Random
}

// NewBalanceModel creates a balance model over the given random source.
func NewBalanceModel(rng *utils.Random) *BalanceModel {
	return &BalanceModel{rng: rng}
}

// Derive produces (balance, averageBalance) for one profile.
func (m *BalanceModel) Derive(accountType string, age, tenureMonths int) (int64, int64) {
	r := rangeForAccountType(accountType)
	balance := m.rng.Int64Range(r.Low, r.High)

	// Minors get a soft cap: values over the ceiling are redrawn
	// uniformly inside the capped range, so the capped distribution stays
	// uniform instead of piling mass at the ceiling.
	if age < config.AdultAge && balance > config.MinorBalanceCeiling {
		lo := r.Low
		hi := min64(r.High, config.MinorBalanceCeiling)
		if lo > hi {
			lo = config.MinorBalanceFloor
			hi = config.MinorBalanceCeiling
		}
		balance = m.rng.Int64Range(lo, hi)
	}

	ratio := tenureRatio(tenureMonths)
	noise := m.rng.Float64Range(-config.AvgBalanceNoise, config.AvgBalanceNoise)
	average := int64(float64(balance) * ratio * (1 + noise))

	// Invariant: average strictly below balance, whatever the noise did.
	if average >= balance {
		average = int64(float64(balance) * 0.999)
		if average >= balance {
			average = balance - 1
		}
	}
	if average < 0 {
		average = 0
	}

	return balance, average
}

// rangeForAccountType looks up the balance range, falling back to the
// default for unknown account types.
func rangeForAccountType(accountType string) config.BalanceRange {
	if r, ok := config.BalanceRangesByAccountType[strings.TrimSpace(accountType)]; ok {
		return r
	}
	return config.DefaultBalanceRange
}

// tenureRatio interpolates the average-balance ratio piecewise-linearly
// over the configured tenure breakpoints, clamped to the policy bounds.
func tenureRatio(tenureMonths int) float64 {
	bps := config.TenureRatioBreakpoints

	if tenureMonths <= bps[0].Months {
		return clampRatio(bps[0].Ratio)
	}
	last := bps[len(bps)-1]
	if tenureMonths >= last.Months {
		return clampRatio(last.Ratio)
	}

	for i := 1; i < len(bps); i++ {
		if tenureMonths > bps[i].Months {
			continue
		}
		prev, next := bps[i-1], bps[i]
		span := float64(next.Months - prev.Months)
		frac := float64(tenureMonths-prev.Months) / span
		return clampRatio(prev.Ratio + frac*(next.Ratio-prev.Ratio))
	}
	return clampRatio(last.Ratio)
}

func clampRatio(r float64) float64 {
	if r < config.TenureRatioMin {
		return config.TenureRatioMin
	}
	if r > config.TenureRatioMax {
		return config.TenureRatioMax
	}
	return r
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
