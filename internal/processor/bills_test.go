package processor_test

import (
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/processor"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestProcessDueBillsIdempotent() {
	category := suite.createTestCategory(models.Category{Name: "Utilities"})
	fund := suite.createTestSinkingFund(models.SinkingFund{
		Name:           "Bills",
		CurrentBalance: decimal.NewFromInt(5000),
	})
	bill := suite.createTestBill(models.RecurringBill{
		Name:        "Rates",
		Amount:      decimal.NewFromInt(2400),
		CategoryID:  category.ID,
		IsActive:    true,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: types.NewDate(2026, 2, 1),
	})

	service := suite.service(types.NewDate(2026, 2, 1))

	err := service.ProcessDueBills()
	assert.Nil(suite.T(), err)

	fund = suite.reloadFund(fund)
	bill = suite.reloadBill(bill)
	assert.True(suite.T(), fund.CurrentBalance.Equal(decimal.NewFromInt(2600)),
		"balance is %s, expected 2600", fund.CurrentBalance)
	assert.True(suite.T(), bill.NextDueDate.Equal(types.NewDate(2026, 3, 1)),
		"due date is %s, expected 2026-03-01", bill.NextDueDate)
	assert.Equal(suite.T(), int64(1), suite.transactionCount())

	// A second run on the same day changes nothing
	err = service.ProcessDueBills()
	assert.Nil(suite.T(), err)

	fund = suite.reloadFund(fund)
	bill = suite.reloadBill(bill)
	assert.True(suite.T(), fund.CurrentBalance.Equal(decimal.NewFromInt(2600)))
	assert.True(suite.T(), bill.NextDueDate.Equal(types.NewDate(2026, 3, 1)))
	assert.Equal(suite.T(), int64(1), suite.transactionCount())
}

func (suite *TestSuiteStandard) TestProcessDueBillsOverdueAdvancesOneCycle() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSinkingFund(models.SinkingFund{
		Name:           "Bills",
		CurrentBalance: decimal.NewFromInt(1000),
	})
	bill := suite.createTestBill(models.RecurringBill{
		Name:        "Internet",
		Amount:      decimal.NewFromInt(80),
		CategoryID:  category.ID,
		IsActive:    true,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: types.NewDate(2026, 2, 1),
	})

	err := suite.service(types.NewDate(2026, 2, 5)).ProcessDueBills()
	assert.Nil(suite.T(), err)

	bill = suite.reloadBill(bill)
	assert.True(suite.T(), bill.NextDueDate.Equal(types.NewDate(2026, 3, 1)),
		"due date advanced from the previous due date, not from today; got %s", bill.NextDueDate)

	var transaction models.Transaction
	err = models.DB.Where("recurring_bill_id = ?", bill.ID).First(&transaction).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), transaction.Date.Equal(types.NewDate(2026, 2, 5)))
	assert.Equal(suite.T(), int64(1), suite.transactionCount())
}

func (suite *TestSuiteStandard) TestProcessDueBillsSkipsVariableBills() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSinkingFund(models.SinkingFund{Name: "Bills"})
	bill := suite.createTestBill(models.RecurringBill{
		Name:        "Electricity",
		Amount:      decimal.NewFromInt(150),
		CategoryID:  category.ID,
		IsActive:    true,
		BillType:    models.BillTypeVariable,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: types.NewDate(2026, 2, 1),
	})

	err := suite.service(types.NewDate(2026, 2, 1)).ProcessDueBills()
	assert.Nil(suite.T(), err)

	bill = suite.reloadBill(bill)
	assert.True(suite.T(), bill.NextDueDate.Equal(types.NewDate(2026, 2, 1)), "variable bill must not be advanced")
	assert.Equal(suite.T(), int64(0), suite.transactionCount())
}

func (suite *TestSuiteStandard) TestProcessDueBillsSkipsInactiveAndNotDue() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSinkingFund(models.SinkingFund{Name: "Bills"})
	_ = suite.createTestBill(models.RecurringBill{
		Name:        "Paused",
		CategoryID:  category.ID,
		IsActive:    false,
		NextDueDate: types.NewDate(2026, 2, 1),
	})
	_ = suite.createTestBill(models.RecurringBill{
		Name:        "Future",
		CategoryID:  category.ID,
		IsActive:    true,
		NextDueDate: types.NewDate(2026, 3, 1),
	})

	err := suite.service(types.NewDate(2026, 2, 1)).ProcessDueBills()
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), suite.transactionCount())
}

func (suite *TestSuiteStandard) TestProcessDueBillsWithoutBillsFund() {
	category := suite.createTestCategory(models.Category{})
	bill := suite.createTestBill(models.RecurringBill{
		Name:        "Water",
		CategoryID:  category.ID,
		IsActive:    true,
		NextDueDate: types.NewDate(2026, 2, 1),
	})

	// Missing Bills fund is a configuration precondition, not an error
	err := suite.service(types.NewDate(2026, 2, 1)).ProcessDueBills()
	assert.Nil(suite.T(), err)

	bill = suite.reloadBill(bill)
	assert.True(suite.T(), bill.NextDueDate.Equal(types.NewDate(2026, 2, 1)))
	assert.Equal(suite.T(), int64(0), suite.transactionCount())
}

func (suite *TestSuiteStandard) TestProcessDueBillsMultipleBills() {
	category := suite.createTestCategory(models.Category{})
	fund := suite.createTestSinkingFund(models.SinkingFund{
		Name:           "Bills",
		CurrentBalance: decimal.NewFromInt(1000),
	})
	_ = suite.createTestBill(models.RecurringBill{
		Name:        "Phone",
		Amount:      decimal.NewFromInt(60),
		CategoryID:  category.ID,
		IsActive:    true,
		Frequency:   models.Frequency28Days,
		NextDueDate: types.NewDate(2026, 1, 30),
	})
	_ = suite.createTestBill(models.RecurringBill{
		Name:        "Insurance",
		Amount:      decimal.NewFromInt(340),
		CategoryID:  category.ID,
		IsActive:    true,
		Frequency:   models.FrequencyQuarterly,
		NextDueDate: types.NewDate(2026, 2, 1),
	})

	err := suite.service(types.NewDate(2026, 2, 1)).ProcessDueBills()
	assert.Nil(suite.T(), err)

	fund = suite.reloadFund(fund)
	assert.True(suite.T(), fund.CurrentBalance.Equal(decimal.NewFromInt(600)),
		"balance is %s, expected 600", fund.CurrentBalance)
	assert.Equal(suite.T(), int64(2), suite.transactionCount())
}

func (suite *TestSuiteStandard) TestRecordBillPayment() {
	category := suite.createTestCategory(models.Category{})
	fund := suite.createTestSinkingFund(models.SinkingFund{
		Name:           "Bills",
		CurrentBalance: decimal.NewFromInt(500),
	})
	bill := suite.createTestBill(models.RecurringBill{
		Name:        "Electricity",
		Amount:      decimal.NewFromInt(150),
		CategoryID:  category.ID,
		IsActive:    true,
		BillType:    models.BillTypeVariable,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: types.NewDate(2026, 2, 1),
	})

	// Variable bills are paid manually, with the actual amount
	transaction, err := processor.RecordBillPayment(models.DB, &bill, decimal.RequireFromString("163.40"), types.NewDate(2026, 2, 1))
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), transaction.Amount.Equal(decimal.RequireFromString("163.40")))
	assert.Equal(suite.T(), models.TransactionRegular, transaction.TransactionType)

	fund = suite.reloadFund(fund)
	assert.True(suite.T(), fund.CurrentBalance.Equal(decimal.RequireFromString("336.60")),
		"balance is %s, expected 336.60", fund.CurrentBalance)

	bill = suite.reloadBill(bill)
	assert.True(suite.T(), bill.NextDueDate.Equal(types.NewDate(2026, 3, 1)))
}

func (suite *TestSuiteStandard) TestRecordBillPaymentWithoutBillsFund() {
	category := suite.createTestCategory(models.Category{})
	bill := suite.createTestBill(models.RecurringBill{
		Name:       "Water",
		CategoryID: category.ID,
	})

	_, err := processor.RecordBillPayment(models.DB, &bill, decimal.NewFromInt(10), types.NewDate(2026, 2, 1))
	assert.ErrorIs(suite.T(), err, models.ErrBillsFundNotFound)
}
