package models

import (
	"strings"

	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillFrequency is the recurrence cadence of a bill. The set is closed;
// new values are rejected at the boundary.
type BillFrequency string

const (
	Frequency28Days    BillFrequency = "28_days"
	FrequencyMonthly   BillFrequency = "monthly"
	FrequencyQuarterly BillFrequency = "quarterly"
	FrequencyYearly    BillFrequency = "yearly"
)

// Valid reports whether the frequency is part of the closed set.
func (f BillFrequency) Valid() bool {
	switch f {
	case Frequency28Days, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// BillType distinguishes bills with a known amount from bills whose amount
// varies per occurrence. Variable bills are excluded from automatic
// payment and require manual payment recording.
type BillType string

const (
	BillTypeFixed    BillType = "fixed"
	BillTypeVariable BillType = "variable"
)

// RecurringBill is a bill that recurs on a fixed cadence. NextDueDate is
// advanced only by the bill processor or by manual payment recording.
type RecurringBill struct {
	Model
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	DebtorProvider string          `json:"debtorProvider"`
	StartDate      types.Date      `json:"startDate"`
	Frequency      BillFrequency   `json:"frequency"`
	CategoryID     uint            `json:"categoryId"`
	Category       Category        `json:"-"`
	EndDate        *types.Date     `json:"endDate,omitempty"`
	IsActive       bool            `json:"isActive"`
	NextDueDate    types.Date      `json:"nextDueDate"`
	BillType       BillType        `json:"billType"`
}

func (b *RecurringBill) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.DebtorProvider = strings.TrimSpace(b.DebtorProvider)

	if !b.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	if b.BillType == "" {
		b.BillType = BillTypeFixed
	}
	if b.BillType != BillTypeFixed && b.BillType != BillTypeVariable {
		return ErrBillTypeInvalid
	}

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

func (b *RecurringBill) BeforeCreate(tx *gorm.DB) error {
	return b.checkIntegrity(tx)
}

func (b *RecurringBill) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CategoryID") {
		return b.checkIntegrity(tx)
	}

	return nil
}

func (b *RecurringBill) checkIntegrity(tx *gorm.DB) error {
	return tx.First(&Category{}, b.CategoryID).Error
}

// ActiveBills returns all active recurring bills.
func ActiveBills(tx *gorm.DB) ([]RecurringBill, error) {
	var bills []RecurringBill
	err := tx.Where("is_active = ?", true).Order("next_due_date ASC, id ASC").Find(&bills).Error
	return bills, err
}
