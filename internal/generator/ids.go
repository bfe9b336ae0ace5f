package generator

import (
	"fmt"
	"math"

	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/utils"
)

// ExhaustionError reports that a requested unique-identifier count exceeds
// the addressable space for the column's format. It is raised before
// generation begins, never discovered by retry-loop starvation.
type ExhaustionError struct {
	Column    string
	Requested int
	Capacity  int64
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("identifier space exhausted: column %s can address %d values, %d requested",
		e.Column, e.Capacity, e.Requested)
}

// IDFormat describes how identifiers for one column are rendered.
type IDFormat struct {
	// Prefix precedes the generated part, e.g. "cust_" or "CUST_".
	Prefix string

	// Style selects the generated part: config.IDStyleNumeric draws
	// Width zero-padded digits; config.IDStyleToken draws alphanumeric
	// characters until the whole identifier reaches Width runes.
	Style string

	// Width is the digit count (numeric) or the total identifier length
	// including the prefix (token).
	Width int
}

// tokenLength returns the generated suffix length for the token style.
func (f IDFormat) tokenLength() int {
	n := f.Width - len(f.Prefix)
	if n < 1 {
		n = 1
	}
	return n
}

// Render draws one identifier in this format from rng. It performs no
// uniqueness bookkeeping; counterparty accounts use it directly.
func (f IDFormat) Render(rng *utils.Random) string {
	if f.Style == config.IDStyleToken {
		return f.Prefix + rng.AlnumString(f.tokenLength())
	}
	low := pow10(f.Width - 1)
	high := pow10(f.Width) - 1
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, rng.Int64Range(low, high))
}

// capacity returns the number of distinct identifiers the format can
// produce, saturating at MaxInt64.
func (f IDFormat) capacity() int64 {
	if f.Style == config.IDStyleToken {
		n := f.tokenLength()
		space := float64(1)
		for i := 0; i < n; i++ {
			space *= 62
			if space > math.MaxInt64 {
				return math.MaxInt64
			}
		}
		return int64(space)
	}
	// Numeric identifiers have no leading zero: 9 * 10^(w-1) values.
	if f.Width >= 19 {
		return math.MaxInt64
	}
	return 9 * pow10(f.Width-1)
}

// IDAllocator issues unique formatted identifiers for one output column.
// Candidates are drawn at random and redrawn on collision against the set
// of previously issued values; the redraw loop is bounded by the up-front
// capacity check in NewIDAllocator.
type IDAllocator struct {
	column string
	format IDFormat
	rng    *utils.Random
	issued map[string]bool
}

// NewIDAllocator creates an allocator for one column, verifying that
// expected identifiers fit the format's addressable space.
func NewIDAllocator(column string, format IDFormat, rng *utils.Random, expected int) (*IDAllocator, error) {
	if space := format.capacity(); int64(expected) > space {
		return nil, &ExhaustionError{Column: column, Requested: expected, Capacity: space}
	}
	return &IDAllocator{
		column: column,
		format: format,
		rng:    rng,
		issued: make(map[string]bool, expected),
	}, nil
}

// Next issues the next unique identifier. Given the same seed and
// allocation order the issued sequence is reproducible.
func (a *IDAllocator) Next() string {
	for {
		candidate := a.format.Render(a.rng)
		if !a.issued[candidate] {
			a.issued[candidate] = true
			return candidate
		}
	}
}

// Issued returns how many identifiers have been allocated.
func (a *IDAllocator) Issued() int {
	return len(a.issued)
}
