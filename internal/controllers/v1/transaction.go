package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/ryanuber/go-glob"
)

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"`
}

type TransactionResponse struct {
	Data models.Transaction `json:"data"`
}

// TransactionQueryFilter contains the fields transactions can be
// filtered by.
type TransactionQueryFilter struct {
	Type            string `form:"type"`
	TransactionType string `form:"transactionType"`
	CategoryID      uint   `form:"category"`
	SinkingFundID   uint   `form:"fund"`
	RecurringBillID uint   `form:"bill"`
	Description     string `form:"description"`
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// CreateTransaction creates a new transaction.
func CreateTransaction(c *gin.Context) {
	var data models.Transaction

	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if data.Date.IsZero() {
		data.Date = clock.Today()
	}

	if err := models.DB.Create(&data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: data})
}

// GetTransactions returns transactions, newest first. The query string
// filters by type, transactionType, category, fund, bill, month and
// description. The description filter supports * as a wildcard.
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidBody)
		return
	}

	month, monthSet, err := monthQuery(c)
	if err != nil {
		return
	}

	q := models.DB.Order("date DESC, id DESC")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.TransactionType != "" {
		q = q.Where("transaction_type = ?", filter.TransactionType)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SinkingFundID != 0 {
		q = q.Where("sinking_fund_id = ?", filter.SinkingFundID)
	}
	if filter.RecurringBillID != 0 {
		q = q.Where("recurring_bill_id = ?", filter.RecurringBillID)
	}
	if monthSet {
		q = q.Where("date >= ? AND date < ?", month, month.AddMonths(1))
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	// Glob matching happens here since the database can not do it
	if filter.Description != "" {
		matched := make([]models.Transaction, 0, len(transactions))
		for _, transaction := range transactions {
			if glob.Glob(filter.Description, transaction.Description) {
				matched = append(matched, transaction)
			}
		}
		transactions = matched
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// GetTransaction returns a transaction by its ID.
func GetTransaction(c *gin.Context) {
	transaction, err := getTransaction(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// UpdateTransaction updates an existing transaction. Only values to be
// updated need to be specified. Balances of sinking funds are not
// recalculated, use the fund endpoints to correct those.
func UpdateTransaction(c *gin.Context) {
	transaction, err := getTransaction(c)
	if err != nil {
		return
	}

	var data models.Transaction
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	// Values that are validated on save keep their stored value when
	// they are not part of the request
	if data.Type == "" {
		data.Type = transaction.Type
	}
	if data.TransactionType == "" {
		data.TransactionType = transaction.TransactionType
	}

	if err := models.DB.Model(&transaction).Updates(data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// DeleteTransaction deletes a transaction.
func DeleteTransaction(c *gin.Context) {
	transaction, err := getTransaction(c)
	if err != nil {
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
