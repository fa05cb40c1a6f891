package models

import (
	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget tracks allocated versus spent discretionary spending for one
// category in one month. The income allocator seeds an empty row for every
// budget-flagged category; AllocatedAmount is set by the user afterwards.
type Budget struct {
	Model
	CategoryID      uint            `json:"categoryId" gorm:"uniqueIndex:budget_category_month"`
	Category        Category        `json:"-"`
	Month           types.Month     `json:"month" gorm:"uniqueIndex:budget_category_month"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" gorm:"type:DECIMAL(20,8)"`
	SpentAmount     decimal.Decimal `json:"spentAmount" gorm:"type:DECIMAL(20,8)"`
	FundBalance     decimal.Decimal `json:"fundBalance" gorm:"type:DECIMAL(20,8)"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	return tx.First(&Category{}, b.CategoryID).Error
}
