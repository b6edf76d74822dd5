package finance

import (
	"context"
	"errors"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundService provides refund scheduling, approval, and payout operations
type RefundService struct {
	refundRepo       finance.RefundRepository
	cancellationRepo finance.CancellationRepository
	ledger           finance.LedgerPoster
}

// NewRefundService creates a new RefundService
func NewRefundService(
	refundRepo finance.RefundRepository,
	cancellationRepo finance.CancellationRepository,
	ledger finance.LedgerPoster,
) *RefundService {
	return &RefundService{
		refundRepo:       refundRepo,
		cancellationRepo: cancellationRepo,
		ledger:           ledger,
	}
}

// RefundResponse represents a refund installment in API responses
type RefundResponse struct {
	ID                uuid.UUID              `json:"id"`
	RefundNumber      string                 `json:"refund_number"`
	CancellationID    uuid.UUID              `json:"cancellation_id"`
	SaleID            uuid.UUID              `json:"sale_id"`
	ClientName        string                 `json:"client_name"`
	InstallmentNumber int                    `json:"installment_number"`
	Amount            decimal.Decimal        `json:"amount"`
	DueDate           time.Time              `json:"due_date"`
	ApprovalStatus    string                 `json:"approval_status"`
	SubmittedAt       *time.Time             `json:"submitted_at,omitempty"`
	ApprovalHistory   []ApprovalHistoryEntry `json:"approval_history"`
	PaymentStatus     string                 `json:"payment_status"`
	PaymentMethod     *string                `json:"payment_method,omitempty"`
	PaidDate          *time.Time             `json:"paid_date,omitempty"`
	TransactionRef    string                 `json:"transaction_ref,omitempty"`
	Remarks           string                 `json:"remarks,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	Version           int                    `json:"version"`
}

// CreateScheduleRequest represents a request to schedule refund installments
type CreateScheduleRequest struct {
	CancellationID       uuid.UUID `json:"cancellation_id" binding:"required"`
	NumberOfInstallments int       `json:"number_of_installments" binding:"required"`
	StartDate            time.Time `json:"start_date" binding:"required"`
}

// MarkPaidRequest represents a request to record a refund payout
type MarkPaidRequest struct {
	PaymentMethod  string     `json:"payment_method" binding:"required"`
	PaymentDate    time.Time  `json:"payment_date" binding:"required"`
	TransactionRef string     `json:"transaction_ref"`
	Remarks        string     `json:"remarks"`
	PaidBy         *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// RefundListFilter defines filtering options for refund list queries
type RefundListFilter struct {
	CancellationID *uuid.UUID `form:"cancellation_id"`
	SaleID         *uuid.UUID `form:"sale_id"`
	ApprovalStatus string     `form:"approval_status"`
	PaymentStatus  string     `form:"payment_status"`
	DueFrom        *time.Time `form:"due_from"`
	DueTo          *time.Time `form:"due_to"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
}

// CreateSchedule splits an approved cancellation's refundable amount into
// equal monthly installments and persists one draft refund per installment.
// The optimistic save on the cancellation claims the schedule before any
// refund rows are written, so two concurrent schedulers cannot both win.
func (s *RefundService) CreateSchedule(ctx context.Context, req CreateScheduleRequest) ([]RefundResponse, error) {
	cancellation, err := s.cancellationRepo.FindByID(ctx, req.CancellationID)
	if err != nil {
		return nil, err
	}
	if cancellation == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cancellation not found")
	}
	if cancellation.Status != finance.CancellationStatusApproved {
		return nil, shared.NewDomainError("INVALID_STATE", "Refunds can only be scheduled for an approved cancellation")
	}

	existing, err := s.refundRepo.CountByCancellation(ctx, req.CancellationID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, shared.NewDomainError("SCHEDULE_ALREADY_EXISTS", "Cancellation already has a refund schedule")
	}

	installments, err := finance.SplitIntoInstallments(
		cancellation.GetRefundableMoney(),
		req.NumberOfInstallments,
		req.StartDate,
	)
	if err != nil {
		return nil, err
	}

	// claim the schedule; a concurrent scheduler loses the version race
	if err := cancellation.ClaimRefundSchedule(); err != nil {
		return nil, err
	}
	if err := s.cancellationRepo.SaveWithLock(ctx, cancellation); err != nil {
		return nil, err
	}

	refunds := make([]*finance.Refund, len(installments))
	for i, inst := range installments {
		refundNumber, err := s.refundRepo.GenerateRefundNumber(ctx)
		if err != nil {
			return nil, err
		}
		refund, err := finance.NewRefund(
			refundNumber,
			cancellation.ID,
			cancellation.SaleID,
			cancellation.ClientName,
			inst.Sequence,
			inst.Amount,
			inst.DueDate,
		)
		if err != nil {
			return nil, err
		}
		refunds[i] = refund
	}

	if err := s.refundRepo.SaveBatch(ctx, refunds); err != nil {
		return nil, err
	}

	responses := make([]RefundResponse, len(refunds))
	for i, r := range refunds {
		responses[i] = *toRefundResponse(r)
	}
	return responses, nil
}

// GetRefundByID gets a refund by ID
func (s *RefundService) GetRefundByID(ctx context.Context, id uuid.UUID) (*RefundResponse, error) {
	refund, err := s.findRefund(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRefundResponse(refund), nil
}

// ListRefunds lists refunds with filtering
func (s *RefundService) ListRefunds(ctx context.Context, filter RefundListFilter) ([]RefundResponse, int64, error) {
	domainFilter := finance.RefundFilter{
		CancellationID: filter.CancellationID,
		SaleID:         filter.SaleID,
		DueFrom:        filter.DueFrom,
		DueTo:          filter.DueTo,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.ApprovalStatus != "" {
		status := approval.Status(filter.ApprovalStatus)
		domainFilter.ApprovalStatus = &status
	}
	if filter.PaymentStatus != "" {
		status := finance.RefundPaymentStatus(filter.PaymentStatus)
		domainFilter.PaymentStatus = &status
	}

	items, err := s.refundRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.refundRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RefundResponse, len(items))
	for i := range items {
		responses[i] = *toRefundResponse(&items[i])
	}

	return responses, total, nil
}

// SubmitRefund submits a refund installment for approval
func (s *RefundService) SubmitRefund(ctx context.Context, id, userID uuid.UUID) (*RefundResponse, error) {
	refund, err := s.findRefund(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := refund.Submit(userID); err != nil {
		return nil, err
	}

	if err := s.refundRepo.SaveWithLock(ctx, refund); err != nil {
		return nil, err
	}

	return toRefundResponse(refund), nil
}

// ApproveRefund records one approval tier's decision on a refund installment
func (s *RefundService) ApproveRefund(ctx context.Context, id, userID uuid.UUID, actorRole approval.Role, remarks string) (*RefundResponse, error) {
	refund, err := s.findRefund(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := refund.Approve(userID, actorRole, remarks); err != nil {
		return nil, err
	}

	if err := s.refundRepo.SaveWithLock(ctx, refund); err != nil {
		return nil, err
	}

	return toRefundResponse(refund), nil
}

// RejectRefund rejects a refund installment
func (s *RefundService) RejectRefund(ctx context.Context, id, userID uuid.UUID, actorRole approval.Role, remarks string) (*RefundResponse, error) {
	refund, err := s.findRefund(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := refund.Reject(userID, actorRole, remarks); err != nil {
		return nil, err
	}

	if err := s.refundRepo.SaveWithLock(ctx, refund); err != nil {
		return nil, err
	}

	return toRefundResponse(refund), nil
}

// MarkRefundAsPaid records the payout of an approved installment, posts it
// to the ledger, and re-derives the cancellation's refund progress
func (s *RefundService) MarkRefundAsPaid(ctx context.Context, id uuid.UUID, req MarkPaidRequest) (*RefundResponse, error) {
	refund, err := s.findRefund(ctx, id)
	if err != nil {
		return nil, err
	}

	var paidBy uuid.UUID
	if req.PaidBy != nil {
		paidBy = *req.PaidBy
	}

	if err := refund.MarkAsPaid(
		paidBy,
		finance.PaymentMethod(req.PaymentMethod),
		req.PaymentDate,
		req.TransactionRef,
		req.Remarks,
	); err != nil {
		return nil, err
	}

	if err := s.refundRepo.SaveWithLock(ctx, refund); err != nil {
		return nil, err
	}

	if err := s.ledger.PostRefund(ctx, refund); err != nil {
		return nil, err
	}

	if err := s.applyRefundProgress(ctx, refund.CancellationID); err != nil {
		return nil, err
	}

	return toRefundResponse(refund), nil
}

// applyRefundProgress recomputes the paid total for the cancellation and
// re-derives its status. The refund itself is already durably PAID at this
// point, so a version race on the cancellation must not strand the derived
// status: reload and re-derive instead of failing the whole payout.
func (s *RefundService) applyRefundProgress(ctx context.Context, cancellationID uuid.UUID) error {
	var err error
	for attempt := 0; attempt < versionRetryLimit; attempt++ {
		err = s.deriveRefundProgress(ctx, cancellationID)
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

func (s *RefundService) deriveRefundProgress(ctx context.Context, cancellationID uuid.UUID) error {
	cancellation, err := s.cancellationRepo.FindByID(ctx, cancellationID)
	if err != nil {
		return err
	}
	if cancellation == nil {
		return shared.NewDomainError("NOT_FOUND", "Cancellation not found")
	}

	paidSum, err := s.refundRepo.SumPaidByCancellation(ctx, cancellationID)
	if err != nil {
		return err
	}

	if err := cancellation.ApplyRefundProgress(valueobject.NewMoneyINR(paidSum)); err != nil {
		return err
	}

	return s.cancellationRepo.SaveWithLock(ctx, cancellation)
}

func (s *RefundService) findRefund(ctx context.Context, id uuid.UUID) (*finance.Refund, error) {
	refund, err := s.refundRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Refund not found")
	}
	return refund, nil
}

func toRefundResponse(r *finance.Refund) *RefundResponse {
	var paymentMethod *string
	if r.PaymentMethod != nil {
		m := r.PaymentMethod.String()
		paymentMethod = &m
	}
	return &RefundResponse{
		ID:                r.ID,
		RefundNumber:      r.RefundNumber,
		CancellationID:    r.CancellationID,
		SaleID:            r.SaleID,
		ClientName:        r.ClientName,
		InstallmentNumber: r.InstallmentNumber,
		Amount:            r.Amount,
		DueDate:           r.DueDate,
		ApprovalStatus:    r.Approval.Status.String(),
		SubmittedAt:       r.Approval.SubmittedAt,
		ApprovalHistory:   toApprovalHistory(r.Approval.History),
		PaymentStatus:     r.PaymentStatus.String(),
		PaymentMethod:     paymentMethod,
		PaidDate:          r.PaidDate,
		TransactionRef:    r.TransactionRef,
		Remarks:           r.Remarks,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		Version:           r.GetVersion(),
	}
}
