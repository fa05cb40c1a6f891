package v1_test

import (
	"net/http"

	v1 "github.com/hearthbudget/backend/internal/controllers/v1"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/hearthbudget/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGetDashboard() {
	income := suite.createTestCategory(models.Category{Name: "Income", Type: models.EntryTypeIncome})
	spending := suite.createTestCategory(models.Category{Name: "Spending", IsBudgetCategory: true})
	fund := suite.createTestSinkingFund(models.SinkingFund{CurrentBalance: decimal.NewFromInt(300)})

	month := types.NewMonth(2026, 3)

	suite.createTestTransaction(models.Transaction{
		Date:       types.NewDate(2026, 3, 1),
		Amount:     decimal.NewFromInt(5000),
		CategoryID: income.ID,
		Type:       models.EntryTypeIncome,
	})
	suite.createTestTransaction(models.Transaction{
		Date:       types.NewDate(2026, 3, 10),
		Amount:     decimal.NewFromInt(120),
		CategoryID: spending.ID,
	})
	// Outside the requested month
	suite.createTestTransaction(models.Transaction{
		Date:       types.NewDate(2026, 4, 1),
		Amount:     decimal.NewFromInt(999),
		CategoryID: spending.ID,
	})

	suite.createTestBudgetRow(spending.ID, month)
	suite.Require().Nil(models.UpsertUnallocatedIncome(models.DB, month, decimal.NewFromInt(2500)))

	r := test.Request(suite.T(), http.MethodGet, "/v1/dashboard?month=2026-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.Month.Equal(month))
	suite.Assert().True(response.Data.IncomeTotal.Equal(decimal.NewFromInt(5000)), "income total is %s", response.Data.IncomeTotal)
	suite.Assert().True(response.Data.ExpenseTotal.Equal(decimal.NewFromInt(120)), "expense total is %s", response.Data.ExpenseTotal)
	suite.Assert().True(response.Data.UnallocatedAmount.Equal(decimal.NewFromInt(2500)))
	suite.Assert().Len(response.Data.Funds, 1)
	suite.Assert().Equal(fund.ID, response.Data.Funds[0].ID)
	suite.Assert().Len(response.Data.Budgets, 1)
}

func (suite *TestSuiteStandard) TestGetDashboardEmptyMonth() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/dashboard?month=2026-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.IncomeTotal.IsZero())
	suite.Assert().True(response.Data.ExpenseTotal.IsZero())
	suite.Assert().True(response.Data.UnallocatedAmount.IsZero())
	suite.Assert().Len(response.Data.Funds, 0)
}

func (suite *TestSuiteStandard) TestGetDashboardInvalidMonth() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/dashboard?month=springtime", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
