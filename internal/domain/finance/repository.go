package finance

import (
	"context"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CancellationFilter defines filtering options for cancellation queries
type CancellationFilter struct {
	shared.Filter
	SaleID   *uuid.UUID          // Filter by sale
	Status   *CancellationStatus // Filter by status
	FromDate *time.Time          // Filter by creation date range start
	ToDate   *time.Time          // Filter by creation date range end
}

// CancellationRepository defines the interface for cancellation persistence
type CancellationRepository interface {
	// FindByID finds a cancellation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Cancellation, error)

	// FindBySaleID finds the cancellation attached to a sale, if any
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*Cancellation, error)

	// FindAll finds cancellations with filtering
	FindAll(ctx context.Context, filter CancellationFilter) ([]Cancellation, error)

	// Save creates or updates a cancellation
	Save(ctx context.Context, cancellation *Cancellation) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, cancellation *Cancellation) error

	// Count counts cancellations with optional filters
	Count(ctx context.Context, filter CancellationFilter) (int64, error)

	// ExistsOpenForSale reports whether the sale already has a
	// non-rejected cancellation
	ExistsOpenForSale(ctx context.Context, saleID uuid.UUID) (bool, error)

	// GenerateCancellationNumber generates a unique cancellation number
	GenerateCancellationNumber(ctx context.Context) (string, error)
}

// RefundFilter defines filtering options for refund queries
type RefundFilter struct {
	shared.Filter
	CancellationID *uuid.UUID           // Filter by cancellation
	SaleID         *uuid.UUID           // Filter by sale
	ApprovalStatus *approval.Status     // Filter by approval status
	PaymentStatus  *RefundPaymentStatus // Filter by payment status
	DueFrom        *time.Time           // Filter by due date range start
	DueTo          *time.Time           // Filter by due date range end
}

// RefundRepository defines the interface for refund installment persistence
type RefundRepository interface {
	// FindByID finds a refund by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Refund, error)

	// FindByCancellation finds all installments of a cancellation,
	// ordered by installment number
	FindByCancellation(ctx context.Context, cancellationID uuid.UUID) ([]Refund, error)

	// FindAll finds refunds with filtering
	FindAll(ctx context.Context, filter RefundFilter) ([]Refund, error)

	// FindPendingApproval finds refunds awaiting the given approval status,
	// most recently submitted first
	FindPendingApproval(ctx context.Context, status approval.Status) ([]Refund, error)

	// Save creates or updates a refund
	Save(ctx context.Context, refund *Refund) error

	// SaveBatch persists a whole refund schedule in one transaction
	SaveBatch(ctx context.Context, refunds []*Refund) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, refund *Refund) error

	// Count counts refunds with optional filters
	Count(ctx context.Context, filter RefundFilter) (int64, error)

	// CountByCancellation counts installments scheduled for a cancellation
	CountByCancellation(ctx context.Context, cancellationID uuid.UUID) (int64, error)

	// SumPaidByCancellation sums the amounts of paid installments
	// for a cancellation
	SumPaidByCancellation(ctx context.Context, cancellationID uuid.UUID) (decimal.Decimal, error)

	// GenerateRefundNumber generates a unique refund number
	GenerateRefundNumber(ctx context.Context) (string, error)
}

// ReceiptFilter defines filtering options for receipt queries
type ReceiptFilter struct {
	shared.Filter
	SaleID         *uuid.UUID       // Filter by sale
	ClientID       *uuid.UUID       // Filter by client
	ApprovalStatus *approval.Status // Filter by approval status
	FromDate       *time.Time       // Filter by receipt date range start
	ToDate         *time.Time       // Filter by receipt date range end
}

// ReceiptRepository defines the interface for receipt persistence
type ReceiptRepository interface {
	// FindByID finds a receipt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)

	// FindByReceiptNumber finds a receipt by its number
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*Receipt, error)

	// FindAll finds receipts with filtering
	FindAll(ctx context.Context, filter ReceiptFilter) ([]Receipt, error)

	// FindPendingApproval finds receipts awaiting the given approval status,
	// most recently submitted first
	FindPendingApproval(ctx context.Context, status approval.Status) ([]Receipt, error)

	// Save creates or updates a receipt
	Save(ctx context.Context, receipt *Receipt) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, receipt *Receipt) error

	// Count counts receipts with optional filters
	Count(ctx context.Context, filter ReceiptFilter) (int64, error)

	// GenerateReceiptNumber generates a unique receipt number
	GenerateReceiptNumber(ctx context.Context) (string, error)
}

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	Category       *ExpenseCategory // Filter by category
	ApprovalStatus *approval.Status // Filter by approval status
	FromDate       *time.Time       // Filter by expense date range start
	ToDate         *time.Time       // Filter by expense date range end
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByExpenseNumber finds an expense by its number
	FindByExpenseNumber(ctx context.Context, expenseNumber string) (*Expense, error)

	// FindAll finds expenses with filtering
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, error)

	// FindPendingApproval finds expenses awaiting the given approval status,
	// most recently submitted first
	FindPendingApproval(ctx context.Context, status approval.Status) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, expense *Expense) error

	// Count counts expenses with optional filters
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)

	// GenerateExpenseNumber generates a unique expense number
	GenerateExpenseNumber(ctx context.Context) (string, error)
}
