package models

import (
	"errors"

	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyUnallocatedIncome holds the residual of one month's income after
// fund allocations, the Bills contribution and the budget allocation are
// subtracted. One row per month.
type MonthlyUnallocatedIncome struct {
	Model
	Month             types.Month     `json:"month" gorm:"uniqueIndex"`
	UnallocatedAmount decimal.Decimal `json:"unallocatedAmount" gorm:"type:DECIMAL(20,8)"`
}

// UpsertUnallocatedIncome creates or overwrites the unallocated-income row
// for the given month.
func UpsertUnallocatedIncome(tx *gorm.DB, month types.Month, amount decimal.Decimal) error {
	var existing MonthlyUnallocatedIncome
	err := tx.Where("month = ?", month).First(&existing).Error
	if err == nil {
		return tx.Model(&existing).Update("unallocated_amount", amount).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrResourceNotFound) {
		return err
	}

	return tx.Create(&MonthlyUnallocatedIncome{
		Month:             month,
		UnallocatedAmount: amount,
	}).Error
}
