package models

import (
	"strings"

	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType records what produced a transaction. Transactions are
// the append-only audit trail of every balance mutation; the processors
// also use them as idempotency markers.
type TransactionType string

const (
	TransactionRegular          TransactionType = "regular"
	TransactionIncome           TransactionType = "income"
	TransactionIncomeAllocation TransactionType = "income_allocation"
	TransactionContribution     TransactionType = "contribution"
	TransactionWithdrawal       TransactionType = "withdrawal"
	TransactionBudgetExpense    TransactionType = "budget_expense"
	TransactionBudgetTransfer   TransactionType = "budget_transfer"
)

// Valid reports whether the transaction type is known.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionRegular, TransactionIncome, TransactionIncomeAllocation,
		TransactionContribution, TransactionWithdrawal,
		TransactionBudgetExpense, TransactionBudgetTransfer:
		return true
	}
	return false
}

// Transaction is a single money movement.
type Transaction struct {
	Model
	Date            types.Date      `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	CategoryID      uint            `json:"categoryId"`
	Category        Category        `json:"-"`
	Type            EntryType       `json:"type"`
	TransactionType TransactionType `json:"transactionType"`
	SinkingFundID   *uint           `json:"sinkingFundId,omitempty"`
	SinkingFund     *SinkingFund    `json:"-"`
	RecurringBillID *uint           `json:"recurringBillId,omitempty"`
	RecurringBill   *RecurringBill  `json:"-"`
	BudgetID        *uint           `json:"budgetId,omitempty"`
	Budget          *Budget         `json:"-"`
	IsPaid          bool            `json:"isPaid"`
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.Type != EntryTypeIncome && t.Type != EntryTypeExpense {
		return ErrCategoryTypeInvalid
	}

	if t.TransactionType == "" {
		t.TransactionType = TransactionRegular
	}
	if !t.TransactionType.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	return tx.First(&Category{}, t.CategoryID).Error
}
