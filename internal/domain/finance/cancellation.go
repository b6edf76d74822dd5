package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CancellationStatus represents the status of a sale cancellation
type CancellationStatus string

const (
	CancellationStatusPending       CancellationStatus = "PENDING"        // Awaiting decision
	CancellationStatusApproved      CancellationStatus = "APPROVED"       // Approved, refunds may be scheduled
	CancellationStatusRejected      CancellationStatus = "REJECTED"       // Rejected, sale stays active
	CancellationStatusPartialRefund CancellationStatus = "PARTIAL_REFUND" // Some refund installments paid
	CancellationStatusRefunded      CancellationStatus = "REFUNDED"       // Full refundable amount paid out
)

// IsValid checks if the status is a valid CancellationStatus
func (s CancellationStatus) IsValid() bool {
	switch s {
	case CancellationStatusPending, CancellationStatusApproved, CancellationStatusRejected,
		CancellationStatusPartialRefund, CancellationStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of CancellationStatus
func (s CancellationStatus) String() string {
	return string(s)
}

// IsDecided returns true once the cancellation decision has been made
func (s CancellationStatus) IsDecided() bool {
	return s != CancellationStatusPending
}

// AllowsRefunds returns true if refund installments can exist in this status
func (s CancellationStatus) AllowsRefunds() bool {
	return s == CancellationStatusApproved || s == CancellationStatusPartialRefund || s == CancellationStatusRefunded
}

// Cancellation represents the termination of an active sale.
// It snapshots the sale's paid amount and computes how much the client
// gets back after the office charge and other deductions.
type Cancellation struct {
	shared.BaseAggregateRoot
	CancellationNumber  string             `json:"cancellation_number"`
	SaleID              uuid.UUID          `json:"sale_id"`
	SaleNumber          string             `json:"sale_number"` // Denormalized for display
	ClientName          string             `json:"client_name"` // Denormalized for display
	Reason              string             `json:"reason"`
	Notes               string             `json:"notes"`
	TotalPaid           decimal.Decimal    `json:"total_paid"` // Snapshot of Sale.PaidAmount
	OfficeChargePercent decimal.Decimal    `json:"office_charge_percent"`
	OfficeChargeAmount  decimal.Decimal    `json:"office_charge_amount"`
	OtherDeductions     decimal.Decimal    `json:"other_deductions"`
	RefundableAmount    decimal.Decimal    `json:"refundable_amount"`
	RefundedAmount      decimal.Decimal    `json:"refunded_amount"` // Sum of paid refund installments
	Status              CancellationStatus `json:"status"`
	RequestedBy         uuid.UUID          `json:"requested_by"`
	DecidedAt           *time.Time         `json:"decided_at"`
	DecidedBy           *uuid.UUID         `json:"decided_by"`
	DecisionRemarks     string             `json:"decision_remarks"`
}

// NewCancellation creates a cancellation request for a sale.
// totalPaid is the sale's paid amount at the moment of cancellation; the
// refundable amount is fixed here and never recomputed later.
func NewCancellation(
	cancellationNumber string,
	saleID uuid.UUID,
	saleNumber string,
	clientName string,
	totalPaid valueobject.Money,
	officeChargePercent decimal.Decimal,
	otherDeductions valueobject.Money,
	reason string,
	requestedBy uuid.UUID,
) (*Cancellation, error) {
	if cancellationNumber == "" {
		return nil, shared.NewDomainError("INVALID_CANCELLATION_NUMBER", "Cancellation number cannot be empty")
	}
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError("MISSING_REASON", "Cancellation reason is required")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Requesting user ID is required")
	}
	if totalPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}

	officeCharge, err := ComputeOfficeCharge(totalPaid, officeChargePercent)
	if err != nil {
		return nil, err
	}
	refundable, err := ComputeRefundable(totalPaid, officeCharge, otherDeductions)
	if err != nil {
		return nil, err
	}

	c := &Cancellation{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		CancellationNumber:  cancellationNumber,
		SaleID:              saleID,
		SaleNumber:          saleNumber,
		ClientName:          clientName,
		Reason:              reason,
		TotalPaid:           totalPaid.Amount(),
		OfficeChargePercent: officeChargePercent,
		OfficeChargeAmount:  officeCharge.Amount(),
		OtherDeductions:     otherDeductions.Amount(),
		RefundableAmount:    refundable.Amount(),
		RefundedAmount:      decimal.Zero,
		Status:              CancellationStatusPending,
		RequestedBy:         requestedBy,
	}

	c.AddDomainEvent(NewCancellationRequestedEvent(c))

	return c, nil
}

// Approve approves the cancellation, allowing refunds to be scheduled
func (c *Cancellation) Approve(decidedBy uuid.UUID, remarks string) error {
	if c.Status != CancellationStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve cancellation in %s status", c.Status))
	}
	if decidedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Deciding user ID is required")
	}

	now := time.Now()
	c.Status = CancellationStatusApproved
	c.DecidedAt = &now
	c.DecidedBy = &decidedBy
	c.DecisionRemarks = remarks
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCancellationApprovedEvent(c))

	return nil
}

// Reject rejects the cancellation; the sale remains active
func (c *Cancellation) Reject(decidedBy uuid.UUID, remarks string) error {
	if c.Status != CancellationStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject cancellation in %s status", c.Status))
	}
	if decidedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Deciding user ID is required")
	}
	if isBlank(remarks) {
		return shared.NewDomainError("MISSING_REASON", "Rejection remarks are required")
	}

	now := time.Now()
	c.Status = CancellationStatusRejected
	c.DecidedAt = &now
	c.DecidedBy = &decidedBy
	c.DecisionRemarks = remarks
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCancellationRejectedEvent(c))

	return nil
}

// ClaimRefundSchedule bumps the cancellation version to claim the refund
// schedule. Persisting the claim with an optimistic lock ensures only one
// scheduler creates installments for the cancellation.
func (c *Cancellation) ClaimRefundSchedule() error {
	if c.Status != CancellationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot schedule refunds for a cancellation in %s status", c.Status))
	}

	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// ApplyRefundProgress records the current sum of paid refund installments
// and re-derives the cancellation status from it. Called every time a
// refund installment is marked paid.
func (c *Cancellation) ApplyRefundProgress(refundedAmount valueobject.Money) error {
	if !c.Status.AllowsRefunds() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record refund progress in %s status", c.Status))
	}
	if refundedAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Refunded amount cannot be negative")
	}
	if refundedAmount.Amount().GreaterThan(c.RefundableAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Refunded amount cannot exceed the refundable amount")
	}

	c.RefundedAmount = refundedAmount.Amount()
	switch {
	case c.RefundedAmount.Equal(c.RefundableAmount):
		c.Status = CancellationStatusRefunded
	case c.RefundedAmount.IsPositive():
		c.Status = CancellationStatusPartialRefund
	default:
		c.Status = CancellationStatusApproved
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	if c.Status == CancellationStatusRefunded {
		c.AddDomainEvent(NewCancellationRefundedEvent(c))
	}

	return nil
}

// SetNotes updates free-form notes on the cancellation
func (c *Cancellation) SetNotes(notes string) error {
	if c.Status == CancellationStatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a rejected cancellation")
	}

	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Helper methods

// GetTotalPaidMoney returns the paid-amount snapshot as Money
func (c *Cancellation) GetTotalPaidMoney() valueobject.Money {
	return valueobject.NewMoneyINR(c.TotalPaid)
}

// GetRefundableMoney returns the refundable amount as Money
func (c *Cancellation) GetRefundableMoney() valueobject.Money {
	return valueobject.NewMoneyINR(c.RefundableAmount)
}

// GetRefundedMoney returns the amount refunded so far as Money
func (c *Cancellation) GetRefundedMoney() valueobject.Money {
	return valueobject.NewMoneyINR(c.RefundedAmount)
}

// RemainingRefund returns the amount still owed to the client
func (c *Cancellation) RemainingRefund() valueobject.Money {
	return valueobject.NewMoneyINR(c.RefundableAmount.Sub(c.RefundedAmount))
}

// IsPending returns true if the cancellation is awaiting a decision
func (c *Cancellation) IsPending() bool {
	return c.Status == CancellationStatusPending
}

// IsApproved returns true once the cancellation has been approved
func (c *Cancellation) IsApproved() bool {
	return c.Status.AllowsRefunds()
}

// IsFullyRefunded returns true once the full refundable amount has been paid
func (c *Cancellation) IsFullyRefunded() bool {
	return c.Status == CancellationStatusRefunded
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
