package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillsFundName is the conventional name of the sinking fund that pays
// recurring bills. Funds created with this name are designated as the
// Bills fund automatically, preserving the stored convention for data
// created before the IsBillsFund flag existed.
const BillsFundName = "Bills"

// SinkingFund is a named virtual savings bucket with a running balance,
// credited by the monthly income allocation and debited by bill payments
// and manual withdrawals.
type SinkingFund struct {
	Model
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	MonthlyAllocation decimal.Decimal `json:"monthlyAllocation" gorm:"type:DECIMAL(20,8)"`
	CurrentBalance    decimal.Decimal `json:"currentBalance" gorm:"type:DECIMAL(20,8)"`
	Color             string          `json:"color"`
	IsBillsFund       bool            `json:"isBillsFund"`
	IsDeleted         bool            `json:"isDeleted"`
}

func (f *SinkingFund) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)

	if f.Name == BillsFundName {
		f.IsBillsFund = true
	}

	return nil
}

// BeforeCreate rejects a second non-deleted Bills fund. The bill processor
// and income allocator resolve exactly one fund through the flag.
func (f *SinkingFund) BeforeCreate(tx *gorm.DB) error {
	if !f.IsBillsFund && f.Name != BillsFundName {
		return nil
	}

	_, err := BillsFund(tx)
	if err == nil {
		return ErrBillsFundAlreadyDesignated
	}
	if errors.Is(err, ErrBillsFundNotFound) {
		return nil
	}

	return err
}

// Credit adds amount to the fund's running balance. The adjustment is
// relative, applied at the storage layer, so a concurrent mutation of the
// same fund cannot lose updates. The receiver is reloaded afterwards.
func (f *SinkingFund) Credit(tx *gorm.DB, amount decimal.Decimal) error {
	err := tx.Model(f).Update("current_balance", gorm.Expr("current_balance + ?", amount)).Error
	if err != nil {
		return err
	}

	return tx.First(f, f.ID).Error
}

// Debit subtracts amount from the fund's running balance.
func (f *SinkingFund) Debit(tx *gorm.DB, amount decimal.Decimal) error {
	return f.Credit(tx, amount.Neg())
}

// BillsFund returns the non-deleted sinking fund designated for bill
// payments. ErrBillsFundNotFound is returned when no such fund exists,
// which callers treat as a configuration precondition, not a hard error.
func BillsFund(tx *gorm.DB) (SinkingFund, error) {
	var fund SinkingFund
	err := tx.Where("is_bills_fund = ? AND is_deleted = ?", true, false).First(&fund).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
		return SinkingFund{}, ErrBillsFundNotFound
	}
	if err != nil {
		return SinkingFund{}, err
	}

	return fund, nil
}
