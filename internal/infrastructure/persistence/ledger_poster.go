package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger entry directions
const (
	ledgerDirectionIn  = "IN"
	ledgerDirectionOut = "OUT"
)

// Ledger entry source types
const (
	ledgerSourceReceipt = "RECEIPT"
	ledgerSourceExpense = "EXPENSE"
	ledgerSourceRefund  = "REFUND"
)

// GormLedgerPoster implements LedgerPoster by appending rows to the
// ledger_entries table. The unique index on (source_type, source_id)
// backs the once-per-document guarantee at the storage level; inserts
// skip the conflict so a retried posting after a partial failure is a
// no-op instead of an error.
type GormLedgerPoster struct {
	db *gorm.DB
}

// NewGormLedgerPoster creates a new GormLedgerPoster
func NewGormLedgerPoster(db *gorm.DB) *GormLedgerPoster {
	return &GormLedgerPoster{db: db}
}

func (p *GormLedgerPoster) insert(ctx context.Context, entry *models.LedgerEntryModel) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_type"}, {Name: "source_id"}},
			DoNothing: true,
		}).
		Create(entry).Error
}

// PostReceipt records an approved receipt as money in
func (p *GormLedgerPoster) PostReceipt(ctx context.Context, receipt *finance.Receipt) error {
	entry := &models.LedgerEntryModel{
		ID:           uuid.New(),
		EntryDate:    receipt.ReceiptDate,
		Direction:    ledgerDirectionIn,
		SourceType:   ledgerSourceReceipt,
		SourceID:     receipt.ID,
		SourceNumber: receipt.ReceiptNumber,
		Amount:       receipt.Amount,
		Description:  fmt.Sprintf("Installment received from %s for sale %s", receipt.ClientName, receipt.SaleID),
		CreatedAt:    time.Now(),
	}
	return p.insert(ctx, entry)
}

// PostExpense records an approved expense as money out
func (p *GormLedgerPoster) PostExpense(ctx context.Context, expense *finance.Expense) error {
	entry := &models.LedgerEntryModel{
		ID:           uuid.New(),
		EntryDate:    expense.ExpenseDate,
		Direction:    ledgerDirectionOut,
		SourceType:   ledgerSourceExpense,
		SourceID:     expense.ID,
		SourceNumber: expense.ExpenseNumber,
		Amount:       expense.Amount,
		Description:  fmt.Sprintf("%s expense paid to %s", expense.Category, expense.PaidTo),
		CreatedAt:    time.Now(),
	}
	return p.insert(ctx, entry)
}

// PostRefund records a paid refund installment as money out
func (p *GormLedgerPoster) PostRefund(ctx context.Context, refund *finance.Refund) error {
	entryDate := time.Now()
	if refund.PaidDate != nil {
		entryDate = *refund.PaidDate
	}
	entry := &models.LedgerEntryModel{
		ID:           uuid.New(),
		EntryDate:    entryDate,
		Direction:    ledgerDirectionOut,
		SourceType:   ledgerSourceRefund,
		SourceID:     refund.ID,
		SourceNumber: refund.RefundNumber,
		Amount:       refund.Amount,
		Description:  fmt.Sprintf("Refund installment %d paid to %s", refund.InstallmentNumber, refund.ClientName),
		CreatedAt:    time.Now(),
	}
	return p.insert(ctx, entry)
}

// Ensure GormLedgerPoster implements the interface
var _ finance.LedgerPoster = (*GormLedgerPoster)(nil)
