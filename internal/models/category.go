package models

import (
	"strings"

	"gorm.io/gorm"
)

// EntryType classifies money movement as incoming or outgoing. It is the
// shared vocabulary for Category.Type and Transaction.Type.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// Category labels transactions and, when flagged as a budget category,
// receives a Budget row for every month the income allocator runs in.
type Category struct {
	Model
	Name             string    `json:"name"`
	Type             EntryType `json:"type"`
	Color            string    `json:"color"`
	IsBudgetCategory bool      `json:"isBudgetCategory"`
	IsDeleted        bool      `json:"isDeleted"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Type != EntryTypeIncome && c.Type != EntryTypeExpense {
		return ErrCategoryTypeInvalid
	}

	return nil
}
