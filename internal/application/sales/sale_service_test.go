package sales

import (
	"context"
	"testing"
	"time"

	"github.com/estatebooks/backend/internal/domain/sales"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

func newTestSale(t *testing.T) *sales.Sale {
	t.Helper()
	sale, err := sales.NewSale(
		"SALE-2026-0042",
		uuid.New(), "Ramesh Gupta",
		uuid.New(), "PLOT-B-17",
		valueobject.NewMoneyINRFromInt(500000),
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return sale
}

func TestSaleService_CreateSale(t *testing.T) {
	repo := new(MockSaleRepository)
	service := NewSaleService(repo)

	repo.On("GenerateSaleNumber", mock.Anything).Return("SALE-2026-0042", nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)

	resp, err := service.CreateSale(context.Background(), CreateSaleRequest{
		ClientID:   uuid.New(),
		ClientName: "Ramesh Gupta",
		PlotID:     uuid.New(),
		PlotNumber: "PLOT-B-17",
		TotalPrice: decimal.NewFromInt(500000),
		SaleDate:   time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Remarks:    "corner plot",
	})

	require.NoError(t, err)
	assert.Equal(t, "SALE-2026-0042", resp.SaleNumber)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.True(t, resp.DueAmount.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, "corner plot", resp.Remarks)
	repo.AssertExpectations(t)
}

func TestSaleService_CreateSale_InvalidPrice(t *testing.T) {
	repo := new(MockSaleRepository)
	service := NewSaleService(repo)

	repo.On("GenerateSaleNumber", mock.Anything).Return("SALE-2026-0043", nil)

	_, err := service.CreateSale(context.Background(), CreateSaleRequest{
		ClientID:   uuid.New(),
		ClientName: "Ramesh Gupta",
		PlotID:     uuid.New(),
		PlotNumber: "PLOT-B-18",
		TotalPrice: decimal.NewFromInt(-1),
		SaleDate:   time.Now(),
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSaleService_GetSaleByID_NotFound(t *testing.T) {
	repo := new(MockSaleRepository)
	service := NewSaleService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := service.GetSaleByID(context.Background(), id)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestSaleService_ListSales(t *testing.T) {
	repo := new(MockSaleRepository)
	service := NewSaleService(repo)

	sale := newTestSale(t)
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("sales.SaleFilter")).
		Return([]sales.Sale{*sale}, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("sales.SaleFilter")).
		Return(int64(1), nil)

	items, total, err := service.ListSales(context.Background(), SaleListFilter{Status: "ACTIVE"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, sale.SaleNumber, items[0].SaleNumber)
}

func TestSaleService_HoldAndResume(t *testing.T) {
	repo := new(MockSaleRepository)
	service := NewSaleService(repo)

	sale := newTestSale(t)
	repo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	repo.On("SaveWithLock", mock.Anything, sale).Return(nil)

	held, err := service.HoldSale(context.Background(), sale.ID, "disputed allotment")
	require.NoError(t, err)
	assert.Equal(t, "ON_HOLD", held.Status)
	assert.Equal(t, "disputed allotment", held.HoldReason)

	resumed, err := service.ResumeSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resumed.Status)
	assert.Empty(t, resumed.HoldReason)
}

func TestSaleService_HoldSale_VersionConflict(t *testing.T) {
	repo := new(MockSaleRepository)
	service := NewSaleService(repo)

	sale := newTestSale(t)
	repo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	repo.On("SaveWithLock", mock.Anything, sale).Return(shared.ErrConcurrencyConflict)

	_, err := service.HoldSale(context.Background(), sale.ID, "disputed allotment")

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VERSION_CONFLICT", domainErr.Code)
}
