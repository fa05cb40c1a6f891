package processor

import (
	"errors"
	"fmt"

	"github.com/hearthbudget/backend/internal/models"
	"github.com/hearthbudget/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProcessIncomeAllocation distributes the configured monthly income across
// the sinking funds, the Bills fund and the discretionary budget pool,
// recording every movement as a transaction and the residual as
// unallocated income. An income transaction already existing for the
// current month makes the whole run a no-op.
func (s *Service) ProcessIncomeAllocation() error {
	today := s.clock.Today()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return processIncomeAllocation(tx, today)
	})
	if err != nil {
		log.Error().Err(err).Stringer("date", today).Msg("processing income allocation failed")
		return fmt.Errorf("processing income allocation: %w", err)
	}

	return nil
}

func processIncomeAllocation(tx *gorm.DB, today types.Date) error {
	month := today.MonthOf()
	monthStart := types.NewDate(today.Year(), today.Month(), 1)
	monthEnd := types.NewDate(today.Year(), today.Month(), types.DaysIn(today.Year(), today.Month()))

	// Idempotency: one income transaction per month
	var count int64
	err := tx.Model(&models.Transaction{}).
		Where("transaction_type = ? AND date >= ? AND date <= ?", models.TransactionIncome, monthStart, monthEnd).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Stringer("month", month).Msg("income already processed, skipping")
		return nil
	}

	config, err := models.AllocationConfig(tx)
	if errors.Is(err, models.ErrAllocationConfigNotFound) {
		log.Warn().Msg("no income allocation configuration exists, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	incomeCategory, ok, err := firstCategory(tx, models.EntryTypeIncome)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn().Msg("no income category exists, skipping income processing")
		return nil
	}

	expenseCategory, ok, err := firstCategory(tx, models.EntryTypeExpense)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn().Msg("no expense category exists, skipping income processing")
		return nil
	}

	// 1. Create the income transaction. Its existence is what makes the
	// guard above effective for future invocations.
	income := models.Transaction{
		Date:            today,
		Description:     fmt.Sprintf("Monthly income %s %d", today.Month(), today.Year()),
		Amount:          config.MonthlyIncomeAmount,
		CategoryID:      incomeCategory.ID,
		Type:            models.EntryTypeIncome,
		TransactionType: models.TransactionIncome,
		IsPaid:          true,
	}
	if err := tx.Create(&income).Error; err != nil {
		return err
	}

	totalAllocated := decimal.Zero

	// The Bills fund is handled separately from the junction rows.
	billsFund, err := models.BillsFund(tx)
	hasBillsFund := err == nil
	if err != nil && !errors.Is(err, models.ErrBillsFundNotFound) {
		return err
	}

	// 2. Distribute to sinking funds per the configured junction rows.
	for _, junction := range config.FundAllocations {
		if hasBillsFund && junction.SinkingFundID == billsFund.ID {
			continue
		}

		// A junction referencing a deleted or missing fund is skipped
		// rather than aborting the month's allocation.
		var fund models.SinkingFund
		err := tx.Where("id = ? AND is_deleted = ?", junction.SinkingFundID, false).First(&fund).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		if !junction.AllocationAmount.IsPositive() {
			continue
		}

		err = creditFund(tx, &fund, junction.AllocationAmount, expenseCategory.ID,
			fmt.Sprintf("Income allocation to %s", fund.Name), today)
		if err != nil {
			return err
		}

		totalAllocated = totalAllocated.Add(junction.AllocationAmount)
	}

	// 3. Credit the Bills fund, fixed or recommended.
	if hasBillsFund {
		billsAmount, err := billsContribution(tx, config)
		if err != nil {
			return err
		}

		if billsAmount.IsPositive() {
			err = creditFund(tx, &billsFund, billsAmount, expenseCategory.ID,
				"Income allocation to Bills fund", today)
			if err != nil {
				return err
			}

			totalAllocated = totalAllocated.Add(billsAmount)
		}
	}

	// 4. Seed an empty Budget row for every budget category that has none
	// for this month. AllocatedAmount stays zero until the user sets it.
	if err := seedBudgets(tx, month); err != nil {
		return err
	}

	// 5. The budget allocation is reserved, not moved: it is tracked only
	// through the unallocated-income calculation.
	totalAllocated = totalAllocated.Add(config.MonthlyBudgetAllocation)

	unallocated := config.MonthlyIncomeAmount.Sub(totalAllocated)
	if err := models.UpsertUnallocatedIncome(tx, month, unallocated); err != nil {
		return err
	}

	log.Info().
		Stringer("month", month).
		Str("income", config.MonthlyIncomeAmount.String()).
		Str("allocated", totalAllocated.String()).
		Str("unallocated", unallocated.String()).
		Msg("income allocation completed")

	return nil
}

// billsContribution computes the monthly Bills fund contribution from the
// configuration: the fixed amount, or the recommendation derived from the
// currently active bills.
func billsContribution(tx *gorm.DB, config models.IncomeAllocation) (decimal.Decimal, error) {
	if config.BillsFundAllocationType == models.AllocationFixed {
		if config.BillsFundFixedAmount == nil {
			return decimal.Zero, nil
		}
		return *config.BillsFundFixedAmount, nil
	}

	bills, err := models.ActiveBills(tx)
	if err != nil {
		return decimal.Zero, err
	}

	return RecommendedBillsAllocation(bills), nil
}

func creditFund(tx *gorm.DB, fund *models.SinkingFund, amount decimal.Decimal, categoryID uint, description string, date types.Date) error {
	transaction := models.Transaction{
		Date:            date,
		Description:     description,
		Amount:          amount,
		CategoryID:      categoryID,
		Type:            models.EntryTypeExpense,
		TransactionType: models.TransactionIncomeAllocation,
		SinkingFundID:   &fund.ID,
		IsPaid:          true,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return err
	}

	return fund.Credit(tx, amount)
}

func seedBudgets(tx *gorm.DB, month types.Month) error {
	var categories []models.Category
	err := tx.Where("is_budget_category = ? AND is_deleted = ?", true, false).Find(&categories).Error
	if err != nil {
		return err
	}

	for _, category := range categories {
		var count int64
		err := tx.Model(&models.Budget{}).
			Where("category_id = ? AND month = ?", category.ID, month).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		budget := models.Budget{
			CategoryID:      category.ID,
			Month:           month,
			AllocatedAmount: decimal.Zero,
			SpentAmount:     decimal.Zero,
			FundBalance:     decimal.Zero,
		}
		if err := tx.Create(&budget).Error; err != nil {
			return err
		}
	}

	return nil
}

func firstCategory(tx *gorm.DB, entryType models.EntryType) (models.Category, bool, error) {
	var category models.Category
	err := tx.Where("type = ? AND is_deleted = ?", entryType, false).Order("id ASC").First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound) {
		return models.Category{}, false, nil
	}
	if err != nil {
		return models.Category{}, false, err
	}

	return category, true, nil
}
