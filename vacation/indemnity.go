package vacation

import "github.com/shopspring/decimal"

// thirty is the divisor for the statutory daily rate (monthly salary / 30).
var thirty = decimal.NewFromInt(30)

// two is the overdue penalty multiplier.
var two = decimal.NewFromInt(2)

// OverdueIndemnity returns the double-pay liability accrued by an overdue
// cycle: the unused days valued at the employee's daily rate, doubled.
// Cycles that are not flagged overdue-double carry no liability.
func OverdueIndemnity(cycle Cycle, monthlySalary decimal.Decimal) decimal.Decimal {
	if !cycle.IsOverdueDouble || cycle.RemainingDays <= 0 {
		return decimal.Zero
	}
	daily := monthlySalary.Div(thirty)
	return daily.Mul(decimal.NewFromInt(int64(cycle.RemainingDays))).Mul(two).Round(2)
}
