package finance

import (
	"context"
	"errors"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/sales"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptService provides application-level receipt operations
type ReceiptService struct {
	receiptRepo finance.ReceiptRepository
	saleRepo    sales.SaleRepository
	ledger      finance.LedgerPoster
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo finance.ReceiptRepository,
	saleRepo sales.SaleRepository,
	ledger finance.LedgerPoster,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		saleRepo:    saleRepo,
		ledger:      ledger,
	}
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID               uuid.UUID              `json:"id"`
	ReceiptNumber    string                 `json:"receipt_number"`
	SaleID           uuid.UUID              `json:"sale_id"`
	ClientID         uuid.UUID              `json:"client_id"`
	ClientName       string                 `json:"client_name"`
	Amount           decimal.Decimal        `json:"amount"`
	PaymentMethod    string                 `json:"payment_method"`
	PaymentReference string                 `json:"payment_reference,omitempty"`
	ReceiptDate      time.Time              `json:"receipt_date"`
	Remarks          string                 `json:"remarks,omitempty"`
	ApprovalStatus   string                 `json:"approval_status"`
	SubmittedAt      *time.Time             `json:"submitted_at,omitempty"`
	ApprovalHistory  []ApprovalHistoryEntry `json:"approval_history"`
	PostedToLedger   bool                   `json:"posted_to_ledger"`
	PostedAt         *time.Time             `json:"posted_at,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	Version          int                    `json:"version"`
}

// ApprovalHistoryEntry represents one approval decision in API responses
type ApprovalHistoryEntry struct {
	ActorID   uuid.UUID `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Level     string    `json:"level"`
	Action    string    `json:"action"`
	Remarks   string    `json:"remarks,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// CreateReceiptRequest represents a request to create a receipt
type CreateReceiptRequest struct {
	SaleID           uuid.UUID       `json:"sale_id" binding:"required"`
	ClientID         uuid.UUID       `json:"client_id" binding:"required"`
	ClientName       string          `json:"client_name" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod    string          `json:"payment_method" binding:"required"`
	PaymentReference string          `json:"payment_reference"`
	ReceiptDate      time.Time       `json:"receipt_date" binding:"required"`
	Remarks          string          `json:"remarks"`
}

// ReceiptListFilter defines filtering options for receipt list queries
type ReceiptListFilter struct {
	Search         string     `form:"search"`
	SaleID         *uuid.UUID `form:"sale_id"`
	ClientID       *uuid.UUID `form:"client_id"`
	ApprovalStatus string     `form:"approval_status"`
	FromDate       *time.Time `form:"from_date"`
	ToDate         *time.Time `form:"to_date"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
}

// CreateReceipt creates a new receipt in draft
func (s *ReceiptService) CreateReceipt(ctx context.Context, req CreateReceiptRequest) (*ReceiptResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	if !sale.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot record a receipt against an inactive sale")
	}

	receiptNumber, err := s.receiptRepo.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := finance.NewReceipt(
		receiptNumber,
		req.SaleID,
		req.ClientID,
		req.ClientName,
		valueobject.NewMoneyINR(req.Amount),
		finance.PaymentMethod(req.PaymentMethod),
		req.ReceiptDate,
	)
	if err != nil {
		return nil, err
	}

	if req.PaymentReference != "" {
		if err := receipt.SetPaymentReference(req.PaymentReference); err != nil {
			return nil, err
		}
	}
	if req.Remarks != "" {
		if err := receipt.SetRemarks(req.Remarks); err != nil {
			return nil, err
		}
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	return toReceiptResponse(receipt), nil
}

// GetReceiptByID gets a receipt by ID
func (s *ReceiptService) GetReceiptByID(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.findReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt), nil
}

// ListReceipts lists receipts with filtering
func (s *ReceiptService) ListReceipts(ctx context.Context, filter ReceiptListFilter) ([]ReceiptResponse, int64, error) {
	domainFilter := finance.ReceiptFilter{
		SaleID:   filter.SaleID,
		ClientID: filter.ClientID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.ApprovalStatus != "" {
		status := approval.Status(filter.ApprovalStatus)
		domainFilter.ApprovalStatus = &status
	}

	items, err := s.receiptRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receiptRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReceiptResponse, len(items))
	for i := range items {
		responses[i] = *toReceiptResponse(&items[i])
	}

	return responses, total, nil
}

// UpdateReceiptRequest represents an edit to a draft receipt
type UpdateReceiptRequest struct {
	PaymentReference *string `json:"payment_reference"`
	Remarks          *string `json:"remarks"`
}

// UpdateReceipt edits a draft receipt's reference and remarks
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id uuid.UUID, req UpdateReceiptRequest) (*ReceiptResponse, error) {
	receipt, err := s.findReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := receipt.UpdateDetails(req.PaymentReference, req.Remarks); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.SaveWithLock(ctx, receipt); err != nil {
		return nil, err
	}

	return toReceiptResponse(receipt), nil
}

// SubmitReceipt submits a receipt for approval
func (s *ReceiptService) SubmitReceipt(ctx context.Context, id, userID uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.findReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := receipt.Submit(userID); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.SaveWithLock(ctx, receipt); err != nil {
		return nil, err
	}

	return toReceiptResponse(receipt), nil
}

// ApproveReceipt records one approval tier's decision. On the final
// approval the receipt is posted to the ledger and the payment is applied
// to the sale; the optimistic save establishes a single winner, so the
// side effects fire at most once.
func (s *ReceiptService) ApproveReceipt(ctx context.Context, id, userID uuid.UUID, actorRole approval.Role, remarks string) (*ReceiptResponse, error) {
	receipt, err := s.findReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	entered, err := receipt.Approve(userID, actorRole, remarks)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.SaveWithLock(ctx, receipt); err != nil {
		return nil, err
	}

	if entered == approval.StatusApproved {
		if err := s.postToLedgerAndApplyPayment(ctx, receipt); err != nil {
			return nil, err
		}
	}

	return toReceiptResponse(receipt), nil
}

// RejectReceipt rejects a receipt
func (s *ReceiptService) RejectReceipt(ctx context.Context, id, userID uuid.UUID, actorRole approval.Role, remarks string) (*ReceiptResponse, error) {
	receipt, err := s.findReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := receipt.Reject(userID, actorRole, remarks); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.SaveWithLock(ctx, receipt); err != nil {
		return nil, err
	}

	return toReceiptResponse(receipt), nil
}

// versionRetryLimit bounds internal retries of follow-up saves that lose an
// optimistic version race after an earlier write has already become durable.
const versionRetryLimit = 3

func (s *ReceiptService) postToLedgerAndApplyPayment(ctx context.Context, receipt *finance.Receipt) error {
	if err := s.ledger.PostReceipt(ctx, receipt); err != nil {
		return err
	}
	if err := s.flagReceiptPosted(ctx, receipt); err != nil {
		return err
	}
	return s.applyPaymentToSale(ctx, receipt)
}

// flagReceiptPosted marks the receipt as posted. The ledger entry is already
// durable here, so a lost version race on the receipt is retried against a
// fresh copy instead of leaving an approved receipt with a stale flag.
func (s *ReceiptService) flagReceiptPosted(ctx context.Context, receipt *finance.Receipt) error {
	if err := receipt.MarkPostedToLedger(time.Now()); err != nil {
		return err
	}
	err := s.receiptRepo.SaveWithLock(ctx, receipt)
	for attempt := 0; errors.Is(err, shared.ErrConcurrencyConflict) && attempt < versionRetryLimit; attempt++ {
		fresh, ferr := s.findReceipt(ctx, receipt.ID)
		if ferr != nil {
			return ferr
		}
		if fresh.PostedToLedger {
			return nil
		}
		if err = fresh.MarkPostedToLedger(time.Now()); err != nil {
			return err
		}
		err = s.receiptRepo.SaveWithLock(ctx, fresh)
	}
	return err
}

// applyPaymentToSale records the receipt amount against the sale. Concurrent
// receipt approvals on the same sale race on its version, so the apply is
// reloaded and retried on conflict.
func (s *ReceiptService) applyPaymentToSale(ctx context.Context, receipt *finance.Receipt) error {
	var err error
	for attempt := 0; attempt < versionRetryLimit; attempt++ {
		sale, ferr := s.saleRepo.FindByID(ctx, receipt.SaleID)
		if ferr != nil {
			return ferr
		}
		if sale == nil {
			return shared.NewDomainError("NOT_FOUND", "Sale not found")
		}
		if err = sale.RecordPayment(receipt.GetAmountMoney()); err != nil {
			return err
		}
		err = s.saleRepo.SaveWithLock(ctx, sale)
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

func (s *ReceiptService) findReceipt(ctx context.Context, id uuid.UUID) (*finance.Receipt, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Receipt not found")
	}
	return receipt, nil
}

func toApprovalHistory(entries approval.History) []ApprovalHistoryEntry {
	history := make([]ApprovalHistoryEntry, len(entries))
	for i, e := range entries {
		history[i] = ApprovalHistoryEntry{
			ActorID:   e.ActorID,
			ActorRole: e.ActorRole.String(),
			Level:     e.Level.String(),
			Action:    string(e.Action),
			Remarks:   e.Remarks,
			DecidedAt: e.DecidedAt,
		}
	}
	return history
}

func toReceiptResponse(r *finance.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:               r.ID,
		ReceiptNumber:    r.ReceiptNumber,
		SaleID:           r.SaleID,
		ClientID:         r.ClientID,
		ClientName:       r.ClientName,
		Amount:           r.Amount,
		PaymentMethod:    r.PaymentMethod.String(),
		PaymentReference: r.PaymentReference,
		ReceiptDate:      r.ReceiptDate,
		Remarks:          r.Remarks,
		ApprovalStatus:   r.Approval.Status.String(),
		SubmittedAt:      r.Approval.SubmittedAt,
		ApprovalHistory:  toApprovalHistory(r.Approval.History),
		PostedToLedger:   r.PostedToLedger,
		PostedAt:         r.PostedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Version:          r.GetVersion(),
	}
}
