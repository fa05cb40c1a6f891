package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationMethod selects how the monthly Bills fund contribution is
// computed: a fixed amount, or the recommendation derived from annualizing
// all active bills.
type AllocationMethod string

const (
	AllocationRecommended AllocationMethod = "recommended"
	AllocationFixed       AllocationMethod = "fixed"
)

// allocationConfigID keys the single IncomeAllocation row. The
// configuration is a well-known record, not "the first row found".
const allocationConfigID = 1

// IncomeAllocation is the single-household configuration describing how
// each month's income is distributed. At most one row exists; it is always
// stored with a fixed id.
type IncomeAllocation struct {
	Model
	MonthlyIncomeAmount     decimal.Decimal  `json:"monthlyIncomeAmount" gorm:"type:DECIMAL(20,8)"`
	MonthlyBudgetAllocation decimal.Decimal  `json:"monthlyBudgetAllocation" gorm:"type:DECIMAL(20,8)"`
	BillsFundAllocationType AllocationMethod `json:"billsFundAllocationType"`
	BillsFundFixedAmount    *decimal.Decimal `json:"billsFundFixedAmount,omitempty" gorm:"type:DECIMAL(20,8)"`

	FundAllocations []IncomeAllocationToSinkingFund `json:"fundAllocations"`
}

// IncomeAllocationToSinkingFund is a junction row stating how much of each
// month's income is credited to one sinking fund.
type IncomeAllocationToSinkingFund struct {
	Model
	IncomeAllocationID uint            `json:"incomeAllocationId"`
	SinkingFundID      uint            `json:"sinkingFundId"`
	SinkingFund        SinkingFund     `json:"-"`
	AllocationAmount   decimal.Decimal `json:"allocationAmount" gorm:"type:DECIMAL(20,8)"`
}

func (a *IncomeAllocation) BeforeSave(_ *gorm.DB) error {
	if a.BillsFundAllocationType == "" {
		a.BillsFundAllocationType = AllocationRecommended
	}
	if a.BillsFundAllocationType != AllocationRecommended && a.BillsFundAllocationType != AllocationFixed {
		return ErrAllocationMethodInvalid
	}

	return nil
}

// BeforeCreate pins the configuration to its well-known id.
func (a *IncomeAllocation) BeforeCreate(_ *gorm.DB) error {
	a.ID = allocationConfigID
	return nil
}

// AllocationConfig returns the income allocation configuration with its
// fund allocations preloaded. ErrAllocationConfigNotFound is returned when
// nothing is configured yet.
func AllocationConfig(tx *gorm.DB) (IncomeAllocation, error) {
	var config IncomeAllocation
	err := tx.Preload("FundAllocations").First(&config, allocationConfigID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
		return IncomeAllocation{}, ErrAllocationConfigNotFound
	}
	if err != nil {
		return IncomeAllocation{}, err
	}

	return config, nil
}

// ReplaceFundAllocations swaps the junction rows of the configuration for
// the given set, deleting whatever was stored before.
func ReplaceFundAllocations(tx *gorm.DB, config *IncomeAllocation, allocations []IncomeAllocationToSinkingFund) error {
	err := tx.Where("income_allocation_id = ?", config.ID).
		Delete(&IncomeAllocationToSinkingFund{}).Error
	if err != nil {
		return err
	}

	for i := range allocations {
		allocations[i].IncomeAllocationID = config.ID
		if err := tx.Create(&allocations[i]).Error; err != nil {
			return err
		}
	}

	config.FundAllocations = allocations
	return nil
}
