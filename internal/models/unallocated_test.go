package models_test

import (
	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUpsertUnallocatedIncome() {
	month := types.NewMonth(2026, 2)

	err := models.UpsertUnallocatedIncome(models.DB, month, decimal.NewFromInt(2500))
	assert.Nil(suite.T(), err)

	var row models.MonthlyUnallocatedIncome
	err = models.DB.Where("month = ?", month).First(&row).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), row.UnallocatedAmount.Equal(decimal.NewFromInt(2500)))

	// Upserting again overwrites instead of creating a second row
	err = models.UpsertUnallocatedIncome(models.DB, month, decimal.NewFromInt(1800))
	assert.Nil(suite.T(), err)

	var count int64
	models.DB.Model(&models.MonthlyUnallocatedIncome{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	err = models.DB.Where("month = ?", month).First(&row).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), row.UnallocatedAmount.Equal(decimal.NewFromInt(1800)))
}

func (suite *TestSuiteStandard) TestUnallocatedIncomeUniqueMonth() {
	month := types.NewMonth(2026, 5)

	err := models.DB.Create(&models.MonthlyUnallocatedIncome{Month: month}).Error
	assert.Nil(suite.T(), err)

	err = models.DB.Create(&models.MonthlyUnallocatedIncome{Month: month}).Error
	assert.ErrorIs(suite.T(), err, models.ErrUnallocatedMonthNotUnique)
}
