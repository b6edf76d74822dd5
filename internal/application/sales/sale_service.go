package sales

import (
	"context"
	"time"

	"github.com/estatebooks/backend/internal/domain/sales"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService provides application-level sale operations
type SaleService struct {
	saleRepo sales.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID          uuid.UUID       `json:"id"`
	SaleNumber  string          `json:"sale_number"`
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name"`
	PlotID      uuid.UUID       `json:"plot_id"`
	PlotNumber  string          `json:"plot_number"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	Status      string          `json:"status"`
	SaleDate    time.Time       `json:"sale_date"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	HeldAt      *time.Time      `json:"held_at,omitempty"`
	HoldReason  string          `json:"hold_reason,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	ClientID   uuid.UUID       `json:"client_id" binding:"required"`
	ClientName string          `json:"client_name" binding:"required"`
	PlotID     uuid.UUID       `json:"plot_id" binding:"required"`
	PlotNumber string          `json:"plot_number" binding:"required"`
	TotalPrice decimal.Decimal `json:"total_price" binding:"required"`
	SaleDate   time.Time       `json:"sale_date" binding:"required"`
	Remarks    string          `json:"remarks"`
}

// SaleListFilter defines filtering options for sale list queries
type SaleListFilter struct {
	Search   string     `form:"search"`
	ClientID *uuid.UUID `form:"client_id"`
	Status   string     `form:"status"`
	FromDate *time.Time `form:"from_date"`
	ToDate   *time.Time `form:"to_date"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// CreateSale creates a new active sale
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	saleNumber, err := s.saleRepo.GenerateSaleNumber(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := sales.NewSale(
		saleNumber,
		req.ClientID,
		req.ClientName,
		req.PlotID,
		req.PlotNumber,
		valueobject.NewMoneyINR(req.TotalPrice),
		req.SaleDate,
	)
	if err != nil {
		return nil, err
	}

	if req.Remarks != "" {
		if err := sale.SetRemarks(req.Remarks); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

// GetSaleByID gets a sale by ID
func (s *SaleService) GetSaleByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := sales.SaleFilter{
		ClientID: filter.ClientID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		status := sales.SaleStatus(filter.Status)
		domainFilter.Status = &status
	}

	items, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = *toSaleResponse(&items[i])
	}

	return responses, total, nil
}

// RecordPaymentRequest represents a direct payment entry against a sale
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// RecordPayment records a payment against an active sale. Payments
// collected through receipts land here once the receipt is approved;
// this entry point covers adjustments recorded outside the receipt flow.
func (s *SaleService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.RecordPayment(valueobject.NewMoneyINR(req.Amount)); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

// HoldSale pauses collections on a sale
func (s *SaleService) HoldSale(ctx context.Context, id uuid.UUID, reason string) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.Hold(reason); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

// ResumeSale reactivates a held sale
func (s *SaleService) ResumeSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.Resume(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

func (s *SaleService) findSale(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	return sale, nil
}

func toSaleResponse(sale *sales.Sale) *SaleResponse {
	return &SaleResponse{
		ID:          sale.ID,
		SaleNumber:  sale.SaleNumber,
		ClientID:    sale.ClientID,
		ClientName:  sale.ClientName,
		PlotID:      sale.PlotID,
		PlotNumber:  sale.PlotNumber,
		TotalPrice:  sale.TotalPrice,
		PaidAmount:  sale.PaidAmount,
		DueAmount:   sale.DueAmount().Amount(),
		Status:      sale.Status.String(),
		SaleDate:    sale.SaleDate,
		CompletedAt: sale.CompletedAt,
		CancelledAt: sale.CancelledAt,
		HeldAt:      sale.HeldAt,
		HoldReason:  sale.HoldReason,
		Remarks:     sale.Remarks,
		CreatedAt:   sale.CreatedAt,
		UpdatedAt:   sale.UpdatedAt,
		Version:     sale.GetVersion(),
	}
}
