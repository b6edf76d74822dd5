package finance

import (
	"time"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundCreatedEvent is raised when a refund installment is scheduled
type RefundCreatedEvent struct {
	shared.BaseDomainEvent
	RefundID          uuid.UUID       `json:"refund_id"`
	RefundNumber      string          `json:"refund_number"`
	CancellationID    uuid.UUID       `json:"cancellation_id"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *RefundCreatedEvent) EventType() string {
	return "RefundCreated"
}

// NewRefundCreatedEvent creates a new RefundCreatedEvent
func NewRefundCreatedEvent(r *Refund) *RefundCreatedEvent {
	return &RefundCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("RefundCreated", "Refund", r.ID),
		RefundID:          r.ID,
		RefundNumber:      r.RefundNumber,
		CancellationID:    r.CancellationID,
		InstallmentNumber: r.InstallmentNumber,
		Amount:            r.Amount,
		DueDate:           r.DueDate,
	}
}

// RefundSubmittedEvent is raised when a refund enters the approval chain
type RefundSubmittedEvent struct {
	shared.BaseDomainEvent
	RefundID       uuid.UUID       `json:"refund_id"`
	RefundNumber   string          `json:"refund_number"`
	CancellationID uuid.UUID       `json:"cancellation_id"`
	Amount         decimal.Decimal `json:"amount"`
	SubmittedBy    uuid.UUID       `json:"submitted_by"`
}

// EventType returns the event type name
func (e *RefundSubmittedEvent) EventType() string {
	return "RefundSubmitted"
}

// NewRefundSubmittedEvent creates a new RefundSubmittedEvent
func NewRefundSubmittedEvent(r *Refund) *RefundSubmittedEvent {
	var submittedBy uuid.UUID
	if r.Approval.SubmittedBy != nil {
		submittedBy = *r.Approval.SubmittedBy
	}
	return &RefundSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RefundSubmitted", "Refund", r.ID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		CancellationID:  r.CancellationID,
		Amount:          r.Amount,
		SubmittedBy:     submittedBy,
	}
}

// RefundApprovedEvent is raised when a refund clears the full approval chain
type RefundApprovedEvent struct {
	shared.BaseDomainEvent
	RefundID       uuid.UUID       `json:"refund_id"`
	RefundNumber   string          `json:"refund_number"`
	CancellationID uuid.UUID       `json:"cancellation_id"`
	Amount         decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *RefundApprovedEvent) EventType() string {
	return "RefundApproved"
}

// NewRefundApprovedEvent creates a new RefundApprovedEvent
func NewRefundApprovedEvent(r *Refund) *RefundApprovedEvent {
	return &RefundApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RefundApproved", "Refund", r.ID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		CancellationID:  r.CancellationID,
		Amount:          r.Amount,
	}
}

// RefundRejectedEvent is raised when a refund is rejected at any tier
type RefundRejectedEvent struct {
	shared.BaseDomainEvent
	RefundID       uuid.UUID       `json:"refund_id"`
	RefundNumber   string          `json:"refund_number"`
	CancellationID uuid.UUID       `json:"cancellation_id"`
	Amount         decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *RefundRejectedEvent) EventType() string {
	return "RefundRejected"
}

// NewRefundRejectedEvent creates a new RefundRejectedEvent
func NewRefundRejectedEvent(r *Refund) *RefundRejectedEvent {
	return &RefundRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RefundRejected", "Refund", r.ID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		CancellationID:  r.CancellationID,
		Amount:          r.Amount,
	}
}

// RefundPaidEvent is raised when a refund installment is paid out
type RefundPaidEvent struct {
	shared.BaseDomainEvent
	RefundID       uuid.UUID       `json:"refund_id"`
	RefundNumber   string          `json:"refund_number"`
	CancellationID uuid.UUID       `json:"cancellation_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	PaidDate       time.Time       `json:"paid_date"`
}

// EventType returns the event type name
func (e *RefundPaidEvent) EventType() string {
	return "RefundPaid"
}

// NewRefundPaidEvent creates a new RefundPaidEvent
func NewRefundPaidEvent(r *Refund) *RefundPaidEvent {
	paidDate := time.Now()
	if r.PaidDate != nil {
		paidDate = *r.PaidDate
	}
	var paymentMethod PaymentMethod
	if r.PaymentMethod != nil {
		paymentMethod = *r.PaymentMethod
	}
	return &RefundPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RefundPaid", "Refund", r.ID),
		RefundID:        r.ID,
		RefundNumber:    r.RefundNumber,
		CancellationID:  r.CancellationID,
		Amount:          r.Amount,
		PaymentMethod:   paymentMethod,
		PaidDate:        paidDate,
	}
}
