package finance

import (
	"context"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter sales.SaleFilter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter sales.SaleFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) ExistsBySaleNumber(ctx context.Context, saleNumber string) (bool, error) {
	args := m.Called(ctx, saleNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockCancellationRepository is a mock implementation of finance.CancellationRepository
type MockCancellationRepository struct {
	mock.Mock
}

func (m *MockCancellationRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Cancellation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Cancellation), args.Error(1)
}

func (m *MockCancellationRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*finance.Cancellation, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Cancellation), args.Error(1)
}

func (m *MockCancellationRepository) FindAll(ctx context.Context, filter finance.CancellationFilter) ([]finance.Cancellation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Cancellation), args.Error(1)
}

func (m *MockCancellationRepository) Save(ctx context.Context, cancellation *finance.Cancellation) error {
	args := m.Called(ctx, cancellation)
	return args.Error(0)
}

func (m *MockCancellationRepository) SaveWithLock(ctx context.Context, cancellation *finance.Cancellation) error {
	args := m.Called(ctx, cancellation)
	return args.Error(0)
}

func (m *MockCancellationRepository) Count(ctx context.Context, filter finance.CancellationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCancellationRepository) ExistsOpenForSale(ctx context.Context, saleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, saleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCancellationRepository) GenerateCancellationNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockRefundRepository is a mock implementation of finance.RefundRepository
type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindByCancellation(ctx context.Context, cancellationID uuid.UUID) ([]finance.Refund, error) {
	args := m.Called(ctx, cancellationID)
	return args.Get(0).([]finance.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindAll(ctx context.Context, filter finance.RefundFilter) ([]finance.Refund, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindPendingApproval(ctx context.Context, status approval.Status) ([]finance.Refund, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]finance.Refund), args.Error(1)
}

func (m *MockRefundRepository) Save(ctx context.Context, refund *finance.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *MockRefundRepository) SaveBatch(ctx context.Context, refunds []*finance.Refund) error {
	args := m.Called(ctx, refunds)
	return args.Error(0)
}

func (m *MockRefundRepository) SaveWithLock(ctx context.Context, refund *finance.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *MockRefundRepository) Count(ctx context.Context, filter finance.RefundFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundRepository) CountByCancellation(ctx context.Context, cancellationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, cancellationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundRepository) SumPaidByCancellation(ctx context.Context, cancellationID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, cancellationID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRefundRepository) GenerateRefundNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockReceiptRepository is a mock implementation of finance.ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*finance.Receipt, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindAll(ctx context.Context, filter finance.ReceiptFilter) ([]finance.Receipt, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindPendingApproval(ctx context.Context, status approval.Status) ([]finance.Receipt, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]finance.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *finance.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) SaveWithLock(ctx context.Context, receipt *finance.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) Count(ctx context.Context, filter finance.ReceiptFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByExpenseNumber(ctx context.Context, expenseNumber string) (*finance.Expense, error) {
	args := m.Called(ctx, expenseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindPendingApproval(ctx context.Context, status approval.Status) ([]finance.Expense, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveWithLock(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) GenerateExpenseNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockLedgerPoster is a mock implementation of finance.LedgerPoster
type MockLedgerPoster struct {
	mock.Mock
}

func (m *MockLedgerPoster) PostReceipt(ctx context.Context, receipt *finance.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockLedgerPoster) PostExpense(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockLedgerPoster) PostRefund(ctx context.Context, refund *finance.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}
