package cashback

import (
	"github.com/shopspring/decimal"
)

// Bracket maps an inclusive value range to a cashback percentage.
type Bracket struct {
	Percentage int
	Start      decimal.Decimal
	End        decimal.Decimal
}

// BracketTable is an ordered list of brackets. Brackets are expected to be
// non-overlapping and ascending; if an edit ever introduces overlap, the
// last matching bracket wins.
type BracketTable []Bracket

// Result is the outcome of a bracket evaluation.
type Result struct {
	Percentage int
	Value      decimal.Decimal
}

// DefaultBracketTable returns the standard cashback brackets:
// 10% up to 999.99, 15% up to 1499.99, 20% up to 100000000.
func DefaultBracketTable() BracketTable {
	return BracketTable{
		{Percentage: 10, Start: decimal.NewFromInt(0), End: decimal.RequireFromString("999.99")},
		{Percentage: 15, Start: decimal.NewFromInt(1000), End: decimal.RequireFromString("1499.99")},
		{Percentage: 20, Start: decimal.NewFromInt(1500), End: decimal.NewFromInt(100000000)},
	}
}

// Evaluate maps an order value to its cashback percentage and value. The
// input is rounded to 2 decimal places (half-even) before the range check,
// and the cashback value is value * percentage / 100, rounded half-even to
// the 2-decimal storage precision.
//
// When no bracket contains the value, Evaluate reports ok=false and the
// order's cashback fields stay null. The default table covers [0, 1e8], so
// a miss only happens with a custom table; the gap is kept deliberately
// rather than being papered over with an error.
func (t BracketTable) Evaluate(value decimal.Decimal) (Result, bool) {
	rounded := value.RoundBank(2)

	var res Result
	matched := false
	for _, b := range t {
		if rounded.GreaterThanOrEqual(b.Start.RoundBank(2)) && rounded.LessThanOrEqual(b.End.RoundBank(2)) {
			res.Percentage = b.Percentage
			res.Value = rounded.Mul(decimal.New(int64(b.Percentage), -2)).RoundBank(2)
			matched = true
		}
	}
	return res, matched
}
