// Package v1 contains the controllers for the v1 API.
package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/processor"
	"github.com/hearthbudget/backend/internal/types"
)

// clock provides the current date for requests that default to today.
// The router overrides it with the configured location on startup.
var clock processor.Clock = processor.LocationClock{Location: time.UTC}

// SetClock sets the clock used for date defaults.
func SetClock(c processor.Clock) {
	clock = c
}

// getCategory verifies that the category from the URL parameters exists and returns it.
func getCategory(c *gin.Context) (models.Category, error) {
	var category models.Category

	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return models.Category{}, err
	}

	err = models.DB.First(&category, id).Error
	if err != nil {
		httputil.Handler(c, err)
		return models.Category{}, err
	}

	return category, nil
}

// getSinkingFund verifies that the sinking fund from the URL parameters exists and returns it.
func getSinkingFund(c *gin.Context) (models.SinkingFund, error) {
	var fund models.SinkingFund

	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return models.SinkingFund{}, err
	}

	err = models.DB.First(&fund, id).Error
	if err != nil {
		httputil.Handler(c, err)
		return models.SinkingFund{}, err
	}

	return fund, nil
}

// getBill verifies that the recurring bill from the URL parameters exists and returns it.
func getBill(c *gin.Context) (models.RecurringBill, error) {
	var bill models.RecurringBill

	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return models.RecurringBill{}, err
	}

	err = models.DB.First(&bill, id).Error
	if err != nil {
		httputil.Handler(c, err)
		return models.RecurringBill{}, err
	}

	return bill, nil
}

// getTransaction verifies that the transaction from the URL parameters exists and returns it.
func getTransaction(c *gin.Context) (models.Transaction, error) {
	var transaction models.Transaction

	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return models.Transaction{}, err
	}

	err = models.DB.First(&transaction, id).Error
	if err != nil {
		httputil.Handler(c, err)
		return models.Transaction{}, err
	}

	return transaction, nil
}

// getBudget verifies that the budget from the URL parameters exists and returns it.
func getBudget(c *gin.Context) (models.Budget, error) {
	var budget models.Budget

	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return models.Budget{}, err
	}

	err = models.DB.First(&budget, id).Error
	if err != nil {
		httputil.Handler(c, err)
		return models.Budget{}, err
	}

	return budget, nil
}

// monthQuery parses the optional month query parameter. The second return
// value reports whether the parameter was set. A parse failure writes the
// error response and returns a non-nil error.
func monthQuery(c *gin.Context) (types.Month, bool, error) {
	value, ok := c.GetQuery("month")
	if !ok {
		return types.Month{}, false, nil
	}

	month, err := types.ParseMonth(value)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidMonth)
		return types.Month{}, false, err
	}

	return month, true, nil
}
