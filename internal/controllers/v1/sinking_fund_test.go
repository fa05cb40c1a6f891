package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/hearthbudget/backend/internal/controllers/v1"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateSinkingFund() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/sinking-funds", `{ "name": "Holidays", "monthlyAllocation": 150 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SinkingFundResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("Holidays", response.Data.Name)
	suite.Assert().False(response.Data.IsBillsFund)
	suite.Assert().True(response.Data.MonthlyAllocation.Equal(decimal.NewFromInt(150)))
}

func (suite *TestSuiteStandard) TestCreateBillsFundByName() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/sinking-funds", `{ "name": "Bills" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SinkingFundResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.IsBillsFund)
}

func (suite *TestSuiteStandard) TestCreateSecondBillsFundFails() {
	suite.createTestSinkingFund(models.SinkingFund{Name: "Bills"})

	r := test.Request(suite.T(), http.MethodPost, "/v1/sinking-funds", `{ "name": "More bills", "isBillsFund": true }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Equal(models.ErrBillsFundAlreadyDesignated.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestUpdateSinkingFundKeepsBalance() {
	fund := suite.createTestSinkingFund(models.SinkingFund{CurrentBalance: decimal.NewFromInt(500)})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/sinking-funds/%d", fund.ID), `{ "description": "Updated", "currentBalance": 9000 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var reloaded models.SinkingFund
	suite.Require().Nil(models.DB.First(&reloaded, fund.ID).Error)
	suite.Assert().Equal("Updated", reloaded.Description)
	suite.Assert().True(reloaded.CurrentBalance.Equal(decimal.NewFromInt(500)), "balance was %s", reloaded.CurrentBalance)
}

func (suite *TestSuiteStandard) TestContributeToSinkingFund() {
	category := suite.createTestCategory(models.Category{})
	fund := suite.createTestSinkingFund(models.SinkingFund{})

	body := fmt.Sprintf(`{ "amount": 75.50, "description": "Top up", "categoryId": %d }`, category.ID)
	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/sinking-funds/%d/contribution", fund.ID), body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.TransactionContribution, response.Data.TransactionType)

	var reloaded models.SinkingFund
	suite.Require().Nil(models.DB.First(&reloaded, fund.ID).Error)
	suite.Assert().True(reloaded.CurrentBalance.Equal(decimal.NewFromFloat(75.50)), "balance was %s", reloaded.CurrentBalance)
}

func (suite *TestSuiteStandard) TestContributionMustBePositive() {
	category := suite.createTestCategory(models.Category{})
	fund := suite.createTestSinkingFund(models.SinkingFund{})

	body := fmt.Sprintf(`{ "amount": -10, "categoryId": %d }`, category.ID)
	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/sinking-funds/%d/contribution", fund.ID), body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Equal(models.ErrAmountNotPositive.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestWithdrawFromSinkingFund() {
	category := suite.createTestCategory(models.Category{})
	fund := suite.createTestSinkingFund(models.SinkingFund{CurrentBalance: decimal.NewFromInt(200)})

	body := fmt.Sprintf(`{ "amount": 80, "description": "Car service", "categoryId": %d }`, category.ID)
	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/sinking-funds/%d/withdrawal", fund.ID), body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var reloaded models.SinkingFund
	suite.Require().Nil(models.DB.First(&reloaded, fund.ID).Error)
	suite.Assert().True(reloaded.CurrentBalance.Equal(decimal.NewFromInt(120)), "balance was %s", reloaded.CurrentBalance)
}

func (suite *TestSuiteStandard) TestWithdrawalExceedingBalanceFails() {
	category := suite.createTestCategory(models.Category{})
	fund := suite.createTestSinkingFund(models.SinkingFund{CurrentBalance: decimal.NewFromInt(50)})

	body := fmt.Sprintf(`{ "amount": 80, "categoryId": %d }`, category.ID)
	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/sinking-funds/%d/withdrawal", fund.ID), body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Equal(models.ErrInsufficientFundBalance.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestDeleteSinkingFund() {
	fund := suite.createTestSinkingFund(models.SinkingFund{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/sinking-funds/%d", fund.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var reloaded models.SinkingFund
	suite.Require().Nil(models.DB.First(&reloaded, fund.ID).Error)
	suite.Assert().True(reloaded.IsDeleted)
}
