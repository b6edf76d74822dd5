package finance

import (
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptCreatedEvent is raised when a new receipt is recorded
type ReceiptCreatedEvent struct {
	shared.BaseDomainEvent
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	SaleID        uuid.UUID       `json:"sale_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// EventType returns the event type name
func (e *ReceiptCreatedEvent) EventType() string {
	return "ReceiptCreated"
}

// NewReceiptCreatedEvent creates a new ReceiptCreatedEvent
func NewReceiptCreatedEvent(r *Receipt) *ReceiptCreatedEvent {
	return &ReceiptCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceiptCreated", "Receipt", r.ID),
		ReceiptID:       r.ID,
		ReceiptNumber:   r.ReceiptNumber,
		SaleID:          r.SaleID,
		Amount:          r.Amount,
		PaymentMethod:   r.PaymentMethod,
	}
}

// ReceiptSubmittedEvent is raised when a receipt enters the approval chain
type ReceiptSubmittedEvent struct {
	shared.BaseDomainEvent
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	Amount        decimal.Decimal `json:"amount"`
	SubmittedBy   uuid.UUID       `json:"submitted_by"`
}

// EventType returns the event type name
func (e *ReceiptSubmittedEvent) EventType() string {
	return "ReceiptSubmitted"
}

// NewReceiptSubmittedEvent creates a new ReceiptSubmittedEvent
func NewReceiptSubmittedEvent(r *Receipt) *ReceiptSubmittedEvent {
	var submittedBy uuid.UUID
	if r.Approval.SubmittedBy != nil {
		submittedBy = *r.Approval.SubmittedBy
	}
	return &ReceiptSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceiptSubmitted", "Receipt", r.ID),
		ReceiptID:       r.ID,
		ReceiptNumber:   r.ReceiptNumber,
		Amount:          r.Amount,
		SubmittedBy:     submittedBy,
	}
}

// ReceiptApprovedEvent is raised when a receipt clears the full approval chain
type ReceiptApprovedEvent struct {
	shared.BaseDomainEvent
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	SaleID        uuid.UUID       `json:"sale_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *ReceiptApprovedEvent) EventType() string {
	return "ReceiptApproved"
}

// NewReceiptApprovedEvent creates a new ReceiptApprovedEvent
func NewReceiptApprovedEvent(r *Receipt) *ReceiptApprovedEvent {
	return &ReceiptApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceiptApproved", "Receipt", r.ID),
		ReceiptID:       r.ID,
		ReceiptNumber:   r.ReceiptNumber,
		SaleID:          r.SaleID,
		Amount:          r.Amount,
	}
}

// ReceiptRejectedEvent is raised when a receipt is rejected at any tier
type ReceiptRejectedEvent struct {
	shared.BaseDomainEvent
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *ReceiptRejectedEvent) EventType() string {
	return "ReceiptRejected"
}

// NewReceiptRejectedEvent creates a new ReceiptRejectedEvent
func NewReceiptRejectedEvent(r *Receipt) *ReceiptRejectedEvent {
	return &ReceiptRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceiptRejected", "Receipt", r.ID),
		ReceiptID:       r.ID,
		ReceiptNumber:   r.ReceiptNumber,
		Amount:          r.Amount,
	}
}
