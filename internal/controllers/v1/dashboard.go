package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardResponse struct {
	Data Dashboard `json:"data"`
}

// Dashboard summarizes one month of household finances.
type Dashboard struct {
	Month             types.Month          `json:"month"`
	IncomeTotal       decimal.Decimal      `json:"incomeTotal"`
	ExpenseTotal      decimal.Decimal      `json:"expenseTotal"`
	UnallocatedAmount decimal.Decimal      `json:"unallocatedAmount"`
	Funds             []models.SinkingFund `json:"funds"`
	Budgets           []models.Budget      `json:"budgets"`
}

// RegisterDashboardRoutes registers the dashboard route with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetDashboard)
}

// GetDashboard returns the summary for the month given in ?month=YYYY-MM,
// defaulting to the current month.
func GetDashboard(c *gin.Context) {
	month, monthSet, err := monthQuery(c)
	if err != nil {
		return
	}
	if !monthSet {
		month = clock.Today().MonthOf()
	}

	var transactions []models.Transaction
	err = models.DB.
		Where("date >= ? AND date < ?", month, month.AddMonths(1)).
		Find(&transactions).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	// Sums are computed here so the math stays in decimals
	income := decimal.Zero
	expense := decimal.Zero
	for _, transaction := range transactions {
		switch transaction.Type {
		case models.EntryTypeIncome:
			income = income.Add(transaction.Amount)
		case models.EntryTypeExpense:
			expense = expense.Add(transaction.Amount)
		}
	}

	var funds []models.SinkingFund
	err = models.DB.Where("is_deleted = ?", false).Order("name ASC").Find(&funds).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	var budgets []models.Budget
	err = models.DB.Where("month = ?", month).Order("category_id ASC").Find(&budgets).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	unallocated := decimal.Zero
	var residual models.MonthlyUnallocatedIncome
	err = models.DB.Where("month = ?", month).First(&residual).Error
	if err == nil {
		unallocated = residual.UnallocatedAmount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, models.ErrResourceNotFound) {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Data: Dashboard{
			Month:             month,
			IncomeTotal:       income,
			ExpenseTotal:      expense,
			UnallocatedAmount: unallocated,
			Funds:             funds,
			Budgets:           budgets,
		},
	})
}
