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

// Service runs the scheduled processors against a database. Every run is a
// single all-or-nothing unit of work; on any error the whole batch rolls
// back and the error propagates to the caller.
type Service struct {
	db    *gorm.DB
	clock Clock
}

// New returns a Service using the given database and clock.
func New(db *gorm.DB, clock Clock) *Service {
	return &Service{db: db, clock: clock}
}

// ProcessDueBills pays every active fixed bill that is due, debiting the
// Bills fund and advancing each bill's due date by exactly one cycle. A
// bill already paid today is skipped, so re-running for the same day is a
// no-op.
func (s *Service) ProcessDueBills() error {
	today := s.clock.Today()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return processDueBills(tx, today)
	})
	if err != nil {
		log.Error().Err(err).Stringer("date", today).Msg("processing due bills failed")
		return fmt.Errorf("processing due bills: %w", err)
	}

	return nil
}

func processDueBills(tx *gorm.DB, today types.Date) error {
	fund, err := models.BillsFund(tx)
	if errors.Is(err, models.ErrBillsFundNotFound) {
		log.Warn().Msg("no Bills sinking fund exists, skipping bill processing")
		return nil
	}
	if err != nil {
		return err
	}

	var bills []models.RecurringBill
	err = tx.
		Where("is_active = ? AND bill_type <> ? AND next_due_date <= ?", true, models.BillTypeVariable, today).
		Order("next_due_date ASC, id ASC").
		Find(&bills).Error
	if err != nil {
		return err
	}

	processed := 0
	for i := range bills {
		bill := &bills[i]

		// Idempotency: exactly one payment per bill per calendar day
		var count int64
		err = tx.Model(&models.Transaction{}).
			Where("recurring_bill_id = ? AND date = ?", bill.ID, today).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		description := fmt.Sprintf("Auto-payment: %s to %s", bill.Name, bill.DebtorProvider)
		_, err = payBill(tx, &fund, bill, bill.Amount, today, description)
		if err != nil {
			return err
		}

		processed++
	}

	if processed > 0 {
		log.Info().Int("bills", processed).Stringer("date", today).Msg("processed due bills")
	}

	return nil
}

// RecordBillPayment records a payment for any bill, including variable
// bills the automatic processor skips. It performs the same
// debit/transaction/due-date-advance sequence as the automatic run and is
// called synchronously by the payment endpoint.
func RecordBillPayment(tx *gorm.DB, bill *models.RecurringBill, amount decimal.Decimal, date types.Date) (models.Transaction, error) {
	fund, err := models.BillsFund(tx)
	if err != nil {
		return models.Transaction{}, err
	}

	description := fmt.Sprintf("Bill payment: %s to %s", bill.Name, bill.DebtorProvider)
	return payBill(tx, &fund, bill, amount, date, description)
}

// payBill creates the payment transaction, debits the Bills fund and
// advances the bill's due date by one cycle from its previous due date.
// Advancing from the previous due date, not from the payment date, keeps
// the cadence correct when processing runs late.
func payBill(tx *gorm.DB, fund *models.SinkingFund, bill *models.RecurringBill, amount decimal.Decimal, date types.Date, description string) (models.Transaction, error) {
	transaction := models.Transaction{
		Date:            date,
		Description:     description,
		Amount:          amount,
		CategoryID:      bill.CategoryID,
		Type:            models.EntryTypeExpense,
		TransactionType: models.TransactionRegular,
		SinkingFundID:   &fund.ID,
		RecurringBillID: &bill.ID,
		IsPaid:          true,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return models.Transaction{}, err
	}

	if err := fund.Debit(tx, amount); err != nil {
		return models.Transaction{}, err
	}

	bill.NextDueDate = NextDueDate(bill.NextDueDate, bill.Frequency)
	if err := tx.Model(bill).Update("next_due_date", bill.NextDueDate).Error; err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}
