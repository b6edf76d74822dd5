package sales

import (
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleCreatedEvent is raised when a plot sale is recorded
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleNumber string          `json:"sale_number"`
	ClientID   uuid.UUID       `json:"client_id"`
	PlotID     uuid.UUID       `json:"plot_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return "SaleCreated"
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCreated", "Sale", s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		ClientID:        s.ClientID,
		PlotID:          s.PlotID,
		TotalPrice:      s.TotalPrice,
	}
}

// SalePaymentRecordedEvent is raised when an approved receipt is applied
type SalePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleNumber string          `json:"sale_number"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// EventType returns the event type name
func (e *SalePaymentRecordedEvent) EventType() string {
	return "SalePaymentRecorded"
}

// NewSalePaymentRecordedEvent creates a new SalePaymentRecordedEvent
func NewSalePaymentRecordedEvent(s *Sale, amount decimal.Decimal) *SalePaymentRecordedEvent {
	return &SalePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SalePaymentRecorded", "Sale", s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		Amount:          amount,
		PaidAmount:      s.PaidAmount,
	}
}

// SaleCompletedEvent is raised when the full price has been collected
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleNumber string          `json:"sale_number"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// EventType returns the event type name
func (e *SaleCompletedEvent) EventType() string {
	return "SaleCompleted"
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(s *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCompleted", "Sale", s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		TotalPrice:      s.TotalPrice,
	}
}

// SaleCancelledEvent is raised when a sale is terminated
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleNumber string          `json:"sale_number"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// EventType returns the event type name
func (e *SaleCancelledEvent) EventType() string {
	return "SaleCancelled"
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(s *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCancelled", "Sale", s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		PaidAmount:      s.PaidAmount,
	}
}
