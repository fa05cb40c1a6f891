package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SinkingFundListResponse struct {
	Data []models.SinkingFund `json:"data"`
}

type SinkingFundResponse struct {
	Data models.SinkingFund `json:"data"`
}

// FundAdjustment is the request body for manual contributions to and
// withdrawals from a sinking fund.
type FundAdjustment struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CategoryID  uint            `json:"categoryId"`
	Date        *types.Date     `json:"date,omitempty"`
}

// RegisterSinkingFundRoutes registers the routes for sinking funds with
// the RouterGroup that is passed.
func RegisterSinkingFundRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetSinkingFunds)
		r.POST("", CreateSinkingFund)
	}

	// Sinking fund with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetSinkingFund)
		r.PATCH("/:id", UpdateSinkingFund)
		r.DELETE("/:id", DeleteSinkingFund)
	}

	// Balance adjustments
	{
		r.OPTIONS("/:id/contribution", httputil.OptionsPost)
		r.POST("/:id/contribution", ContributeToSinkingFund)
		r.OPTIONS("/:id/withdrawal", httputil.OptionsPost)
		r.POST("/:id/withdrawal", WithdrawFromSinkingFund)
	}
}

// CreateSinkingFund creates a new sinking fund.
func CreateSinkingFund(c *gin.Context) {
	var data models.SinkingFund

	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if err := models.DB.Create(&data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, SinkingFundResponse{Data: data})
}

// GetSinkingFunds returns all sinking funds that are not deleted.
func GetSinkingFunds(c *gin.Context) {
	var funds []models.SinkingFund

	err := models.DB.Where("is_deleted = ?", false).Order("name ASC").Find(&funds).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, SinkingFundListResponse{Data: funds})
}

// GetSinkingFund returns a sinking fund by its ID.
func GetSinkingFund(c *gin.Context) {
	fund, err := getSinkingFund(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, SinkingFundResponse{Data: fund})
}

// UpdateSinkingFund updates an existing sinking fund. The balance can not
// be set directly, use the contribution and withdrawal endpoints instead.
func UpdateSinkingFund(c *gin.Context) {
	fund, err := getSinkingFund(c)
	if err != nil {
		return
	}

	var data models.SinkingFund
	if err := httputil.BindData(c, &data); err != nil {
		return
	}
	// Reset to the zero value so the struct update skips the field
	data.CurrentBalance = decimal.Decimal{}

	if err := models.DB.Model(&fund).Updates(data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, SinkingFundResponse{Data: fund})
}

// DeleteSinkingFund marks a sinking fund as deleted. Deleted funds are
// skipped by the income allocation.
func DeleteSinkingFund(c *gin.Context) {
	fund, err := getSinkingFund(c)
	if err != nil {
		return
	}

	err = models.DB.Model(&fund).Update("is_deleted", true).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ContributeToSinkingFund credits the fund with the given amount and
// records a contribution transaction.
func ContributeToSinkingFund(c *gin.Context) {
	fund, err := getSinkingFund(c)
	if err != nil {
		return
	}

	transaction, err := adjustSinkingFund(c, fund, models.TransactionContribution)
	if err != nil {
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction})
}

// WithdrawFromSinkingFund debits the fund by the given amount and records
// a withdrawal transaction. The fund balance can not go negative.
func WithdrawFromSinkingFund(c *gin.Context) {
	fund, err := getSinkingFund(c)
	if err != nil {
		return
	}

	transaction, err := adjustSinkingFund(c, fund, models.TransactionWithdrawal)
	if err != nil {
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction})
}

func adjustSinkingFund(c *gin.Context, fund models.SinkingFund, transactionType models.TransactionType) (models.Transaction, error) {
	var data FundAdjustment

	if err := httputil.BindData(c, &data); err != nil {
		return models.Transaction{}, err
	}

	if !data.Amount.IsPositive() {
		httputil.NewError(c, http.StatusBadRequest, models.ErrAmountNotPositive)
		return models.Transaction{}, models.ErrAmountNotPositive
	}

	if transactionType == models.TransactionWithdrawal && data.Amount.GreaterThan(fund.CurrentBalance) {
		httputil.NewError(c, http.StatusBadRequest, models.ErrInsufficientFundBalance)
		return models.Transaction{}, models.ErrInsufficientFundBalance
	}

	date := clock.Today()
	if data.Date != nil {
		date = *data.Date
	}

	transaction := models.Transaction{
		Date:            date,
		Description:     data.Description,
		Amount:          data.Amount,
		CategoryID:      data.CategoryID,
		Type:            models.EntryTypeExpense,
		TransactionType: transactionType,
		SinkingFundID:   &fund.ID,
		IsPaid:          true,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		if transactionType == models.TransactionWithdrawal {
			return fund.Debit(tx, transaction.Amount)
		}
		return fund.Credit(tx, transaction.Amount)
	})
	if err != nil {
		httputil.Handler(c, err)
		return models.Transaction{}, err
	}

	return transaction, nil
}
