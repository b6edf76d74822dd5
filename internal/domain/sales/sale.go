package sales

import (
	"fmt"
	"time"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a plot sale
type SaleStatus string

const (
	SaleStatusActive    SaleStatus = "ACTIVE"    // Installments being collected
	SaleStatusCompleted SaleStatus = "COMPLETED" // Fully paid
	SaleStatusCancelled SaleStatus = "CANCELLED" // Terminated via an approved cancellation
	SaleStatusOnHold    SaleStatus = "ON_HOLD"   // Collections paused
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusActive, SaleStatusCompleted, SaleStatusCancelled, SaleStatusOnHold:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further payments can be recorded
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusCompleted || s == SaleStatusCancelled
}

// Sale represents a plot sold to a client on installments.
// PaidAmount only ever grows while the sale is active; the due amount
// is always derived, never stored independently.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber  string          `json:"sale_number"`
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name"` // Denormalized for display
	PlotID      uuid.UUID       `json:"plot_id"`
	PlotNumber  string          `json:"plot_number"` // Denormalized for display
	TotalPrice  decimal.Decimal `json:"total_price"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      SaleStatus      `json:"status"`
	SaleDate    time.Time       `json:"sale_date"`
	CompletedAt *time.Time      `json:"completed_at"`
	CancelledAt *time.Time      `json:"cancelled_at"`
	HeldAt      *time.Time      `json:"held_at"`
	HoldReason  string          `json:"hold_reason"`
	Remarks     string          `json:"remarks"`
}

// NewSale creates a new active sale
func NewSale(
	saleNumber string,
	clientID uuid.UUID,
	clientName string,
	plotID uuid.UUID,
	plotNumber string,
	totalPrice valueobject.Money,
	saleDate time.Time,
) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if len(saleNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot exceed 50 characters")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if plotID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLOT", "Plot ID cannot be empty")
	}
	if !totalPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total price must be positive")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_SALE_DATE", "Sale date is required")
	}

	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		ClientID:          clientID,
		ClientName:        clientName,
		PlotID:            plotID,
		PlotNumber:        plotNumber,
		TotalPrice:        totalPrice.Amount(),
		PaidAmount:        decimal.Zero,
		Status:            SaleStatusActive,
		SaleDate:          saleDate,
	}

	s.AddDomainEvent(NewSaleCreatedEvent(s))

	return s, nil
}

// RecordPayment increases the paid amount after a receipt clears approval.
// Completes the sale automatically when the full price has been collected.
func (s *Sale) RecordPayment(amount valueobject.Money) error {
	if s.Status != SaleStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on %s sale", s.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	newPaid := s.PaidAmount.Add(amount.Amount())
	if newPaid.GreaterThan(s.TotalPrice) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment would exceed the total price")
	}

	s.PaidAmount = newPaid
	if s.PaidAmount.Equal(s.TotalPrice) {
		now := time.Now()
		s.Status = SaleStatusCompleted
		s.CompletedAt = &now
		s.AddDomainEvent(NewSaleCompletedEvent(s))
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSalePaymentRecordedEvent(s, amount.Amount()))

	return nil
}

// Hold pauses collections on an active sale
func (s *Sale) Hold(reason string) error {
	if s.Status != SaleStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot hold %s sale", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("MISSING_REASON", "Hold reason is required")
	}

	now := time.Now()
	s.Status = SaleStatusOnHold
	s.HeldAt = &now
	s.HoldReason = reason
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Resume reactivates a held sale
func (s *Sale) Resume() error {
	if s.Status != SaleStatusOnHold {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot resume %s sale", s.Status))
	}

	s.Status = SaleStatusActive
	s.HeldAt = nil
	s.HoldReason = ""
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// MarkCancelled terminates the sale once its cancellation has been approved
func (s *Sale) MarkCancelled() error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel %s sale", s.Status))
	}

	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCancelledEvent(s))

	return nil
}

// SetRemarks sets free-form remarks
func (s *Sale) SetRemarks(remarks string) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a closed sale")
	}

	s.Remarks = remarks
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Helper methods

// GetTotalPriceMoney returns the total price as Money
func (s *Sale) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(s.TotalPrice)
}

// GetPaidAmountMoney returns the amount paid so far as Money
func (s *Sale) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(s.PaidAmount)
}

// DueAmount returns the outstanding balance
func (s *Sale) DueAmount() valueobject.Money {
	return valueobject.NewMoneyINR(s.TotalPrice.Sub(s.PaidAmount))
}

// IsActive returns true if payments can be recorded
func (s *Sale) IsActive() bool {
	return s.Status == SaleStatusActive
}

// IsCancellable returns true if a cancellation can be requested
func (s *Sale) IsCancellable() bool {
	return !s.Status.IsTerminal()
}
