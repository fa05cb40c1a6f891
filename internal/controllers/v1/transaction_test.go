package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/hearthbudget/backend/internal/controllers/v1"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/hearthbudget/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateTransaction() {
	category := suite.createTestCategory(models.Category{})

	body := fmt.Sprintf(`{ "date": "2026-03-14", "description": "Groceries", "amount": 54.30, "categoryId": %d, "type": "expense" }`, category.ID)
	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(models.TransactionRegular, response.Data.TransactionType)
	suite.Assert().True(response.Data.Date.Equal(types.NewDate(2026, 3, 14)))
}

func (suite *TestSuiteStandard) TestCreateTransactionUnknownCategory() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions", `{ "date": "2026-03-14", "amount": 10, "categoryId": 999, "type": "expense" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetTransactionsFilters() {
	category := suite.createTestCategory(models.Category{Name: "Income", Type: models.EntryTypeIncome})
	other := suite.createTestCategory(models.Category{Name: "Spending"})

	suite.createTestTransaction(models.Transaction{
		Date:       types.NewDate(2026, 3, 1),
		Amount:     decimal.NewFromInt(5000),
		CategoryID: category.ID,
		Type:       models.EntryTypeIncome,
	})
	suite.createTestTransaction(models.Transaction{
		Date:        types.NewDate(2026, 3, 12),
		Description: "Electricity bill",
		Amount:      decimal.NewFromInt(120),
		CategoryID:  other.ID,
	})
	suite.createTestTransaction(models.Transaction{
		Date:        types.NewDate(2026, 4, 2),
		Description: "Water bill",
		Amount:      decimal.NewFromInt(80),
		CategoryID:  other.ID,
	})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"no filter", "", 3},
		{"by type", "?type=income", 1},
		{"by category", fmt.Sprintf("?category=%d", other.ID), 2},
		{"by month", "?month=2026-03", 2},
		{"by description glob", "?description=*bill", 2},
		{"glob and month", "?description=*bill&month=2026-04", 1},
		{"no match", "?description=Rent*", 0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodGet, "/v1/transactions"+tt.query, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(suite.T(), &r, &response)
			suite.Assert().Len(response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsInvalidMonth() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/transactions?month=March", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	transaction := suite.createTestTransaction(models.Transaction{
		Date:        types.NewDate(2026, 3, 12),
		Description: "Eletricity bill",
		Amount:      decimal.NewFromInt(120),
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%d", transaction.ID), `{ "description": "Electricity bill" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Electricity bill", response.Data.Description)
	suite.Assert().Equal(models.EntryTypeExpense, response.Data.Type)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	transaction := suite.createTestTransaction(models.Transaction{
		Date:   types.NewDate(2026, 3, 12),
		Amount: decimal.NewFromInt(10),
	})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%d", transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}
