package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/shopspring/decimal"
)

type BudgetListResponse struct {
	Data []models.Budget `json:"data"`
}

type BudgetResponse struct {
	Data models.Budget `json:"data"`
}

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetBudgetByID)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// CreateBudget creates a budget row for one category and month. The
// income allocation seeds empty rows automatically, this endpoint covers
// months it has not processed yet.
func CreateBudget(c *gin.Context) {
	var data models.Budget

	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if err := models.DB.Create(&data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: data})
}

// GetBudgets returns budgets, optionally filtered by ?month=YYYY-MM.
func GetBudgets(c *gin.Context) {
	month, monthSet, err := monthQuery(c)
	if err != nil {
		return
	}

	q := models.DB.Order("month DESC, category_id ASC")
	if monthSet {
		q = q.Where("month = ?", month)
	}

	var budgets []models.Budget
	if err := q.Find(&budgets).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}

// GetBudgetByID returns a budget by its ID.
func GetBudgetByID(c *gin.Context) {
	budget, err := getBudget(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// BudgetEditable contains the fields of a budget that can be updated.
// Pointers distinguish an explicit zero from an omitted field.
type BudgetEditable struct {
	AllocatedAmount *decimal.Decimal `json:"allocatedAmount,omitempty"`
	SpentAmount     *decimal.Decimal `json:"spentAmount,omitempty"`
	FundBalance     *decimal.Decimal `json:"fundBalance,omitempty"`
}

// UpdateBudget updates the amounts of a budget. The category and month
// are fixed once the row exists.
func UpdateBudget(c *gin.Context) {
	budget, err := getBudget(c)
	if err != nil {
		return
	}

	var data BudgetEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	updates := map[string]any{}
	if data.AllocatedAmount != nil {
		updates["allocated_amount"] = *data.AllocatedAmount
	}
	if data.SpentAmount != nil {
		updates["spent_amount"] = *data.SpentAmount
	}
	if data.FundBalance != nil {
		updates["fund_balance"] = *data.FundBalance
	}

	if len(updates) > 0 {
		if err := models.DB.Model(&budget).Updates(updates).Error; err != nil {
			httputil.Handler(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// DeleteBudget deletes a budget row.
func DeleteBudget(c *gin.Context) {
	budget, err := getBudget(c)
	if err != nil {
		return
	}

	if err := models.DB.Delete(&budget).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
