package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAmountNotPositive          = errors.New("amounts must be larger than zero")
	ErrFrequencyInvalid           = errors.New("frequency must be one of 28_days, monthly, quarterly, yearly")
	ErrBillTypeInvalid            = errors.New("bill type must be fixed or variable")
	ErrBudgetMonthNotUnique       = errors.New("you can not create multiple budgets for the same category and month")
	ErrUnallocatedMonthNotUnique  = errors.New("you can not create multiple unallocated income records for the same month")
	ErrAllocationConfigNotFound   = errors.New("no income allocation configuration exists")
	ErrBillsFundNotFound          = errors.New("no Bills sinking fund exists")
	ErrCategoryTypeInvalid        = errors.New("category type must be income or expense")
	ErrTransactionTypeInvalid     = errors.New("transaction type is not valid")
	ErrAllocationMethodInvalid    = errors.New("bills fund allocation type must be recommended or fixed")
	ErrCategoryReferenceInvalid   = errors.New("the referenced category does not exist")
	ErrFundReferenceInvalid       = errors.New("the referenced sinking fund does not exist")
	ErrInsufficientFundBalance    = errors.New("the sinking fund balance is not sufficient for this withdrawal")
	ErrBillsFundAlreadyDesignated = errors.New("another sinking fund is already designated as the Bills fund")
)
