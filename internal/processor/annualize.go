package processor

import (
	"github.com/hearthbudget/backend/internal/models"
	"github.com/shopspring/decimal"
)

// frequencyAnnualMultiplier converts a per-occurrence bill amount into an
// annualized cost. 13.036 is 365.25 / 28.
var frequencyAnnualMultiplier = map[models.BillFrequency]decimal.Decimal{
	models.FrequencyMonthly:   decimal.NewFromInt(12),
	models.FrequencyQuarterly: decimal.NewFromInt(4),
	models.FrequencyYearly:    decimal.NewFromInt(1),
	models.Frequency28Days:    decimal.RequireFromString("13.036"),
}

// AnnualCost returns the annualized cost of one recurring bill.
func AnnualCost(bill models.RecurringBill) decimal.Decimal {
	multiplier, ok := frequencyAnnualMultiplier[bill.Frequency]
	if !ok {
		multiplier = decimal.NewFromInt(1)
	}

	return bill.Amount.Mul(multiplier)
}

// RecommendedBillsAllocation returns the recommended monthly contribution
// to the Bills fund: the total annual cost of the given bills divided by
// twelve.
//
// All monetary outputs of this package round half away from zero to two
// decimal places.
func RecommendedBillsAllocation(bills []models.RecurringBill) decimal.Decimal {
	total := decimal.Zero
	for _, bill := range bills {
		total = total.Add(AnnualCost(bill))
	}

	if total.IsZero() {
		return decimal.Zero
	}

	return total.Div(decimal.NewFromInt(12)).Round(2)
}
