package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IncomeAllocationResponse struct {
	Data models.IncomeAllocation `json:"data"`
}

// IncomeAllocationEditable is the request body for configuring the
// monthly income allocation. The whole configuration is replaced on
// every update, including the fund allocations.
type IncomeAllocationEditable struct {
	MonthlyIncomeAmount     decimal.Decimal          `json:"monthlyIncomeAmount"`
	MonthlyBudgetAllocation decimal.Decimal          `json:"monthlyBudgetAllocation"`
	BillsFundAllocationType models.AllocationMethod  `json:"billsFundAllocationType"`
	BillsFundFixedAmount    *decimal.Decimal         `json:"billsFundFixedAmount,omitempty"`
	FundAllocations         []FundAllocationEditable `json:"fundAllocations"`
}

type FundAllocationEditable struct {
	SinkingFundID    uint            `json:"sinkingFundId"`
	AllocationAmount decimal.Decimal `json:"allocationAmount"`
}

// RegisterIncomeAllocationRoutes registers the routes for the income
// allocation configuration with the RouterGroup that is passed.
func RegisterIncomeAllocationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetIncomeAllocation)
	r.POST("", UpsertIncomeAllocation)
}

// GetIncomeAllocation returns the income allocation configuration with
// its fund allocations.
func GetIncomeAllocation(c *gin.Context) {
	config, err := models.AllocationConfig(models.DB)
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, IncomeAllocationResponse{Data: config})
}

// UpsertIncomeAllocation creates or replaces the income allocation
// configuration. There is exactly one configuration per household, so
// repeated calls overwrite it.
func UpsertIncomeAllocation(c *gin.Context) {
	var data IncomeAllocationEditable

	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	allocations := make([]models.IncomeAllocationToSinkingFund, 0, len(data.FundAllocations))
	for _, allocation := range data.FundAllocations {
		var fund models.SinkingFund
		if err := models.DB.First(&fund, allocation.SinkingFundID).Error; err != nil {
			httputil.NewError(c, http.StatusBadRequest, models.ErrFundReferenceInvalid)
			return
		}

		allocations = append(allocations, models.IncomeAllocationToSinkingFund{
			SinkingFundID:    allocation.SinkingFundID,
			AllocationAmount: allocation.AllocationAmount,
		})
	}

	status := http.StatusOK
	var config models.IncomeAllocation

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		config, err = models.AllocationConfig(tx)
		if errors.Is(err, models.ErrAllocationConfigNotFound) {
			status = http.StatusCreated
			config = models.IncomeAllocation{}
		} else if err != nil {
			return err
		}

		// The junction rows are replaced below, not saved as an association
		config.FundAllocations = nil
		config.MonthlyIncomeAmount = data.MonthlyIncomeAmount
		config.MonthlyBudgetAllocation = data.MonthlyBudgetAllocation
		config.BillsFundAllocationType = data.BillsFundAllocationType
		config.BillsFundFixedAmount = data.BillsFundFixedAmount

		if err := tx.Save(&config).Error; err != nil {
			return err
		}

		return models.ReplaceFundAllocations(tx, &config, allocations)
	})
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(status, IncomeAllocationResponse{Data: config})
}
