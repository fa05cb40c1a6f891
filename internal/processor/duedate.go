// Package processor implements the recurring financial-event engine: the
// due-date arithmetic for recurring bills, the annualized Bills fund
// recommendation, and the two scheduled batch jobs that move money between
// the virtual ledgers.
package processor

import (
	"time"

	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/types"
)

// NextDueDate returns the next occurrence of a recurring bill after
// current. The day of month is clamped to the last valid day of the target
// month and never overflows into the following month, so a bill due on the
// 31st lands on Feb 28 (or 29) and stays stable afterwards.
func NextDueDate(current types.Date, frequency models.BillFrequency) types.Date {
	switch frequency {
	case models.Frequency28Days:
		return current.AddDays(28)
	case models.FrequencyMonthly:
		return addMonthsClamped(current, 1)
	case models.FrequencyQuarterly:
		return addMonthsClamped(current, 3)
	case models.FrequencyYearly:
		year := current.Year() + 1
		day := min(current.Day(), types.DaysIn(year, current.Month()))
		return types.NewDate(year, current.Month(), day)
	}

	// Unreachable through the models layer, which rejects frequencies
	// outside the closed set. Kept for rows that predate that validation.
	return current.AddDays(30)
}

func addMonthsClamped(current types.Date, count int) types.Date {
	// The first of the month cannot overflow, so the target month can be
	// computed with plain time arithmetic before the day is clamped.
	target := time.Date(current.Year(), current.Month()+time.Month(count), 1, 0, 0, 0, 0, time.UTC)

	day := min(current.Day(), types.DaysIn(target.Year(), target.Month()))
	return types.NewDate(target.Year(), target.Month(), day)
}
