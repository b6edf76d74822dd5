package finance

import (
	"context"
	"sort"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document kinds appearing in the approval queue
const (
	QueueKindReceipt = "RECEIPT"
	QueueKindExpense = "EXPENSE"
	QueueKindRefund  = "REFUND"
)

// ApprovalQueueService returns the documents awaiting a role's decision,
// merged across document kinds. Read-only; decisions go through the
// per-kind services.
type ApprovalQueueService struct {
	receiptRepo finance.ReceiptRepository
	expenseRepo finance.ExpenseRepository
	refundRepo  finance.RefundRepository
}

// NewApprovalQueueService creates a new ApprovalQueueService
func NewApprovalQueueService(
	receiptRepo finance.ReceiptRepository,
	expenseRepo finance.ExpenseRepository,
	refundRepo finance.RefundRepository,
) *ApprovalQueueService {
	return &ApprovalQueueService{
		receiptRepo: receiptRepo,
		expenseRepo: expenseRepo,
		refundRepo:  refundRepo,
	}
}

// QueueItem is one document awaiting approval
type QueueItem struct {
	Kind           string          `json:"kind"`
	ID             uuid.UUID       `json:"id"`
	DocumentNumber string          `json:"document_number"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	ApprovalStatus string          `json:"approval_status"`
	SubmittedAt    *time.Time      `json:"submitted_at,omitempty"`
}

// GetQueue returns everything awaiting the given role's decision,
// most recently submitted first
func (s *ApprovalQueueService) GetQueue(ctx context.Context, actorRole approval.Role) ([]QueueItem, error) {
	status, ok := approval.PendingStatusFor(actorRole)
	if !ok {
		return nil, shared.NewDomainError("FORBIDDEN", "Role has no approval queue")
	}

	receipts, err := s.receiptRepo.FindPendingApproval(ctx, status)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindPendingApproval(ctx, status)
	if err != nil {
		return nil, err
	}
	refunds, err := s.refundRepo.FindPendingApproval(ctx, status)
	if err != nil {
		return nil, err
	}

	items := make([]QueueItem, 0, len(receipts)+len(expenses)+len(refunds))
	for i := range receipts {
		r := &receipts[i]
		items = append(items, QueueItem{
			Kind:           QueueKindReceipt,
			ID:             r.ID,
			DocumentNumber: r.ReceiptNumber,
			Description:    r.ClientName,
			Amount:         r.Amount,
			ApprovalStatus: r.Approval.Status.String(),
			SubmittedAt:    r.Approval.SubmittedAt,
		})
	}
	for i := range expenses {
		e := &expenses[i]
		items = append(items, QueueItem{
			Kind:           QueueKindExpense,
			ID:             e.ID,
			DocumentNumber: e.ExpenseNumber,
			Description:    e.PaidTo,
			Amount:         e.Amount,
			ApprovalStatus: e.Approval.Status.String(),
			SubmittedAt:    e.Approval.SubmittedAt,
		})
	}
	for i := range refunds {
		r := &refunds[i]
		items = append(items, QueueItem{
			Kind:           QueueKindRefund,
			ID:             r.ID,
			DocumentNumber: r.RefundNumber,
			Description:    r.ClientName,
			Amount:         r.Amount,
			ApprovalStatus: r.Approval.Status.String(),
			SubmittedAt:    r.Approval.SubmittedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := items[i].SubmittedAt, items[j].SubmittedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	return items, nil
}
