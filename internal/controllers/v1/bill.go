package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/processor"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillListResponse struct {
	Data []models.RecurringBill `json:"data"`
}

type BillResponse struct {
	Data models.RecurringBill `json:"data"`
}

// BillPayment is the request body for recording a manual bill payment.
// Both fields are optional: the amount defaults to the bill amount and
// the date to the current day.
type BillPayment struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Date   *types.Date      `json:"date,omitempty"`
}

// BillPaymentResponse returns the recorded payment together with the
// bill, whose next due date has been advanced.
type BillPaymentResponse struct {
	Data BillPaymentData `json:"data"`
}

type BillPaymentData struct {
	Transaction models.Transaction   `json:"transaction"`
	Bill        models.RecurringBill `json:"bill"`
}

// RegisterBillRoutes registers the routes for recurring bills with
// the RouterGroup that is passed.
func RegisterBillRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBills)
		r.POST("", CreateBill)
	}

	// Bill with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetBill)
		r.PATCH("/:id", UpdateBill)
		r.DELETE("/:id", DeleteBill)
	}

	// Manual payment
	{
		r.OPTIONS("/:id/pay", httputil.OptionsPost)
		r.POST("/:id/pay", PayBill)
	}
}

// CreateBill creates a new recurring bill. The next due date defaults to
// the start date.
func CreateBill(c *gin.Context) {
	var data models.RecurringBill

	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if data.NextDueDate.IsZero() {
		data.NextDueDate = data.StartDate
	}
	data.IsActive = true

	if err := models.DB.Create(&data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, BillResponse{Data: data})
}

// GetBills returns all recurring bills, ordered by the next due date.
// With ?active=true, only active bills are returned.
func GetBills(c *gin.Context) {
	q := models.DB.Order("next_due_date ASC, id ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var bills []models.RecurringBill
	if err := q.Find(&bills).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, BillListResponse{Data: bills})
}

// GetBill returns a recurring bill by its ID.
func GetBill(c *gin.Context) {
	bill, err := getBill(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: bill})
}

// UpdateBill updates an existing recurring bill. Only values to be
// updated need to be specified.
func UpdateBill(c *gin.Context) {
	bill, err := getBill(c)
	if err != nil {
		return
	}

	var data models.RecurringBill
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	// Values that are validated on save keep their stored value when
	// they are not part of the request
	if data.Frequency == "" {
		data.Frequency = bill.Frequency
	}
	if data.BillType == "" {
		data.BillType = bill.BillType
	}
	if data.Amount.IsZero() {
		data.Amount = bill.Amount
	}

	if err := models.DB.Model(&bill).Updates(data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: bill})
}

// DeleteBill deactivates a recurring bill. The row and its transactions
// are kept for history.
func DeleteBill(c *gin.Context) {
	bill, err := getBill(c)
	if err != nil {
		return
	}

	err = models.DB.Model(&bill).Update("is_active", false).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PayBill records a manual payment for a bill. This is the only way to
// pay bills with a variable amount. The payment debits the Bills fund and
// advances the next due date by one cycle.
func PayBill(c *gin.Context) {
	bill, err := getBill(c)
	if err != nil {
		return
	}

	// The body is optional, an empty one uses all defaults
	var data BillPayment
	if c.Request.ContentLength != 0 {
		if err := httputil.BindData(c, &data); err != nil {
			return
		}
	}

	amount := bill.Amount
	if data.Amount != nil {
		amount = *data.Amount
	}
	if !amount.IsPositive() {
		httputil.NewError(c, http.StatusBadRequest, models.ErrAmountNotPositive)
		return
	}

	date := clock.Today()
	if data.Date != nil {
		date = *data.Date
	}

	var transaction models.Transaction
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		transaction, err = processor.RecordBillPayment(tx, &bill, amount, date)
		return err
	})
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, BillPaymentResponse{
		Data: BillPaymentData{
			Transaction: transaction,
			Bill:        bill,
		},
	})
}
