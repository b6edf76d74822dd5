package finance

import (
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CancellationRequestedEvent is raised when a sale cancellation is requested
type CancellationRequestedEvent struct {
	shared.BaseDomainEvent
	CancellationID     uuid.UUID       `json:"cancellation_id"`
	CancellationNumber string          `json:"cancellation_number"`
	SaleID             uuid.UUID       `json:"sale_id"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	RefundableAmount   decimal.Decimal `json:"refundable_amount"`
	Reason             string          `json:"reason"`
}

// EventType returns the event type name
func (e *CancellationRequestedEvent) EventType() string {
	return "CancellationRequested"
}

// NewCancellationRequestedEvent creates a new CancellationRequestedEvent
func NewCancellationRequestedEvent(c *Cancellation) *CancellationRequestedEvent {
	return &CancellationRequestedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent("CancellationRequested", "Cancellation", c.ID),
		CancellationID:     c.ID,
		CancellationNumber: c.CancellationNumber,
		SaleID:             c.SaleID,
		TotalPaid:          c.TotalPaid,
		RefundableAmount:   c.RefundableAmount,
		Reason:             c.Reason,
	}
}

// CancellationApprovedEvent is raised when a cancellation is approved
type CancellationApprovedEvent struct {
	shared.BaseDomainEvent
	CancellationID     uuid.UUID       `json:"cancellation_id"`
	CancellationNumber string          `json:"cancellation_number"`
	SaleID             uuid.UUID       `json:"sale_id"`
	RefundableAmount   decimal.Decimal `json:"refundable_amount"`
	DecidedBy          uuid.UUID       `json:"decided_by"`
}

// EventType returns the event type name
func (e *CancellationApprovedEvent) EventType() string {
	return "CancellationApproved"
}

// NewCancellationApprovedEvent creates a new CancellationApprovedEvent
func NewCancellationApprovedEvent(c *Cancellation) *CancellationApprovedEvent {
	var decidedBy uuid.UUID
	if c.DecidedBy != nil {
		decidedBy = *c.DecidedBy
	}
	return &CancellationApprovedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent("CancellationApproved", "Cancellation", c.ID),
		CancellationID:     c.ID,
		CancellationNumber: c.CancellationNumber,
		SaleID:             c.SaleID,
		RefundableAmount:   c.RefundableAmount,
		DecidedBy:          decidedBy,
	}
}

// CancellationRejectedEvent is raised when a cancellation is rejected
type CancellationRejectedEvent struct {
	shared.BaseDomainEvent
	CancellationID     uuid.UUID `json:"cancellation_id"`
	CancellationNumber string    `json:"cancellation_number"`
	SaleID             uuid.UUID `json:"sale_id"`
	DecidedBy          uuid.UUID `json:"decided_by"`
	DecisionRemarks    string    `json:"decision_remarks"`
}

// EventType returns the event type name
func (e *CancellationRejectedEvent) EventType() string {
	return "CancellationRejected"
}

// NewCancellationRejectedEvent creates a new CancellationRejectedEvent
func NewCancellationRejectedEvent(c *Cancellation) *CancellationRejectedEvent {
	var decidedBy uuid.UUID
	if c.DecidedBy != nil {
		decidedBy = *c.DecidedBy
	}
	return &CancellationRejectedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent("CancellationRejected", "Cancellation", c.ID),
		CancellationID:     c.ID,
		CancellationNumber: c.CancellationNumber,
		SaleID:             c.SaleID,
		DecidedBy:          decidedBy,
		DecisionRemarks:    c.DecisionRemarks,
	}
}

// CancellationRefundedEvent is raised once the full refundable amount
// has been paid out
type CancellationRefundedEvent struct {
	shared.BaseDomainEvent
	CancellationID     uuid.UUID       `json:"cancellation_id"`
	CancellationNumber string          `json:"cancellation_number"`
	SaleID             uuid.UUID       `json:"sale_id"`
	RefundedAmount     decimal.Decimal `json:"refunded_amount"`
}

// EventType returns the event type name
func (e *CancellationRefundedEvent) EventType() string {
	return "CancellationRefunded"
}

// NewCancellationRefundedEvent creates a new CancellationRefundedEvent
func NewCancellationRefundedEvent(c *Cancellation) *CancellationRefundedEvent {
	return &CancellationRefundedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent("CancellationRefunded", "Cancellation", c.ID),
		CancellationID:     c.ID,
		CancellationNumber: c.CancellationNumber,
		SaleID:             c.SaleID,
		RefundedAmount:     c.RefundedAmount,
	}
}
