package finance

import (
	"context"
	"time"

	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/sales"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CancellationService provides application-level cancellation operations
type CancellationService struct {
	cancellationRepo finance.CancellationRepository
	saleRepo         sales.SaleRepository
}

// NewCancellationService creates a new CancellationService
func NewCancellationService(
	cancellationRepo finance.CancellationRepository,
	saleRepo sales.SaleRepository,
) *CancellationService {
	return &CancellationService{
		cancellationRepo: cancellationRepo,
		saleRepo:         saleRepo,
	}
}

// CancellationResponse represents a cancellation in API responses
type CancellationResponse struct {
	ID                  uuid.UUID       `json:"id"`
	CancellationNumber  string          `json:"cancellation_number"`
	SaleID              uuid.UUID       `json:"sale_id"`
	SaleNumber          string          `json:"sale_number"`
	ClientName          string          `json:"client_name"`
	Reason              string          `json:"reason"`
	Notes               string          `json:"notes,omitempty"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	OfficeChargePercent decimal.Decimal `json:"office_charge_percent"`
	OfficeChargeAmount  decimal.Decimal `json:"office_charge_amount"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`
	RefundableAmount    decimal.Decimal `json:"refundable_amount"`
	RefundedAmount      decimal.Decimal `json:"refunded_amount"`
	RemainingRefund     decimal.Decimal `json:"remaining_refund"`
	Status              string          `json:"status"`
	RequestedBy         uuid.UUID       `json:"requested_by"`
	DecidedAt           *time.Time      `json:"decided_at,omitempty"`
	DecidedBy           *uuid.UUID      `json:"decided_by,omitempty"`
	DecisionRemarks     string          `json:"decision_remarks,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Version             int             `json:"version"`
}

// CreateCancellationRequest represents a request to cancel a sale
type CreateCancellationRequest struct {
	SaleID              uuid.UUID       `json:"sale_id" binding:"required"`
	Reason              string          `json:"reason" binding:"required"`
	OfficeChargePercent decimal.Decimal `json:"office_charge_percent"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`
	Notes               string          `json:"notes"`
	RequestedBy         *uuid.UUID      `json:"-"` // Set from JWT context, not from request body
}

// CancellationListFilter defines filtering options for cancellation list queries
type CancellationListFilter struct {
	Search   string     `form:"search"`
	SaleID   *uuid.UUID `form:"sale_id"`
	Status   string     `form:"status"`
	FromDate *time.Time `form:"from_date"`
	ToDate   *time.Time `form:"to_date"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// CreateCancellation requests a cancellation for a sale, snapshotting the
// paid amount and fixing the refundable amount
func (s *CancellationService) CreateCancellation(ctx context.Context, req CreateCancellationRequest) (*CancellationResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	if !sale.IsCancellable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Sale is already closed")
	}

	exists, err := s.cancellationRepo.ExistsOpenForSale(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CANCELLATION", "Sale already has an open cancellation")
	}

	cancellationNumber, err := s.cancellationRepo.GenerateCancellationNumber(ctx)
	if err != nil {
		return nil, err
	}

	var requestedBy uuid.UUID
	if req.RequestedBy != nil {
		requestedBy = *req.RequestedBy
	}

	cancellation, err := finance.NewCancellation(
		cancellationNumber,
		sale.ID,
		sale.SaleNumber,
		sale.ClientName,
		sale.GetPaidAmountMoney(),
		req.OfficeChargePercent,
		valueobject.NewMoneyINR(req.OtherDeductions),
		req.Reason,
		requestedBy,
	)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		if err := cancellation.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.cancellationRepo.Save(ctx, cancellation); err != nil {
		return nil, err
	}

	return toCancellationResponse(cancellation), nil
}

// GetCancellationByID gets a cancellation by ID
func (s *CancellationService) GetCancellationByID(ctx context.Context, id uuid.UUID) (*CancellationResponse, error) {
	cancellation, err := s.findCancellation(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCancellationResponse(cancellation), nil
}

// ListCancellations lists cancellations with filtering
func (s *CancellationService) ListCancellations(ctx context.Context, filter CancellationListFilter) ([]CancellationResponse, int64, error) {
	domainFilter := finance.CancellationFilter{
		SaleID:   filter.SaleID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		status := finance.CancellationStatus(filter.Status)
		domainFilter.Status = &status
	}

	items, err := s.cancellationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.cancellationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CancellationResponse, len(items))
	for i := range items {
		responses[i] = *toCancellationResponse(&items[i])
	}

	return responses, total, nil
}

// ApproveCancellation approves the cancellation and terminates the sale
func (s *CancellationService) ApproveCancellation(ctx context.Context, id, userID uuid.UUID, remarks string) (*CancellationResponse, error) {
	cancellation, err := s.findCancellation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cancellation.Approve(userID, remarks); err != nil {
		return nil, err
	}

	if err := s.cancellationRepo.SaveWithLock(ctx, cancellation); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindByID(ctx, cancellation.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	if err := sale.MarkCancelled(); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	return toCancellationResponse(cancellation), nil
}

// RejectCancellation rejects the cancellation; the sale stays active
func (s *CancellationService) RejectCancellation(ctx context.Context, id, userID uuid.UUID, remarks string) (*CancellationResponse, error) {
	cancellation, err := s.findCancellation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cancellation.Reject(userID, remarks); err != nil {
		return nil, err
	}

	if err := s.cancellationRepo.SaveWithLock(ctx, cancellation); err != nil {
		return nil, err
	}

	return toCancellationResponse(cancellation), nil
}

func (s *CancellationService) findCancellation(ctx context.Context, id uuid.UUID) (*finance.Cancellation, error) {
	cancellation, err := s.cancellationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cancellation == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cancellation not found")
	}
	return cancellation, nil
}

func toCancellationResponse(c *finance.Cancellation) *CancellationResponse {
	return &CancellationResponse{
		ID:                  c.ID,
		CancellationNumber:  c.CancellationNumber,
		SaleID:              c.SaleID,
		SaleNumber:          c.SaleNumber,
		ClientName:          c.ClientName,
		Reason:              c.Reason,
		Notes:               c.Notes,
		TotalPaid:           c.TotalPaid,
		OfficeChargePercent: c.OfficeChargePercent,
		OfficeChargeAmount:  c.OfficeChargeAmount,
		OtherDeductions:     c.OtherDeductions,
		RefundableAmount:    c.RefundableAmount,
		RefundedAmount:      c.RefundedAmount,
		RemainingRefund:     c.RemainingRefund().Amount(),
		Status:              c.Status.String(),
		RequestedBy:         c.RequestedBy,
		DecidedAt:           c.DecidedAt,
		DecidedBy:           c.DecidedBy,
		DecisionRemarks:     c.DecisionRemarks,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
		Version:             c.GetVersion(),
	}
}
