package finance

import (
	"fmt"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundPaymentStatus tracks the payment lifecycle of a refund installment.
// It is independent of the approval lifecycle: an installment is first
// approved through the usual chain, then paid out.
type RefundPaymentStatus string

const (
	RefundPaymentPending   RefundPaymentStatus = "PENDING"   // Not yet paid out
	RefundPaymentPaid      RefundPaymentStatus = "PAID"      // Paid to the client
	RefundPaymentCancelled RefundPaymentStatus = "CANCELLED" // Will never be paid (approval rejected)
)

// IsValid checks if the status is a valid RefundPaymentStatus
func (s RefundPaymentStatus) IsValid() bool {
	switch s {
	case RefundPaymentPending, RefundPaymentPaid, RefundPaymentCancelled:
		return true
	}
	return false
}

// String returns the string representation of RefundPaymentStatus
func (s RefundPaymentStatus) String() string {
	return string(s)
}

// Refund represents one installment of an approved cancellation's refund
// schedule. Each installment moves through the approval chain on its own
// and is then individually marked paid.
type Refund struct {
	shared.BaseAggregateRoot
	RefundNumber      string              `json:"refund_number"`
	CancellationID    uuid.UUID           `json:"cancellation_id"`
	SaleID            uuid.UUID           `json:"sale_id"`     // Denormalized for display
	ClientName        string              `json:"client_name"` // Denormalized for display
	InstallmentNumber int                 `json:"installment_number"`
	Amount            decimal.Decimal     `json:"amount"`
	DueDate           time.Time           `json:"due_date"`
	Approval          approval.Flow       `json:"approval"`
	PaymentStatus     RefundPaymentStatus `json:"payment_status"`
	PaymentMethod     *PaymentMethod      `json:"payment_method"`
	PaidDate          *time.Time          `json:"paid_date"`
	PaidBy            *uuid.UUID          `json:"paid_by"`
	TransactionRef    string              `json:"transaction_ref"`
	Remarks           string              `json:"remarks"`
}

// NewRefund creates one refund installment. Callers normally go through the
// refund scheduler, which derives the amounts and due dates for a whole
// cancellation at once.
func NewRefund(
	refundNumber string,
	cancellationID uuid.UUID,
	saleID uuid.UUID,
	clientName string,
	installmentNumber int,
	amount valueobject.Money,
	dueDate time.Time,
) (*Refund, error) {
	if refundNumber == "" {
		return nil, shared.NewDomainError("INVALID_REFUND_NUMBER", "Refund number cannot be empty")
	}
	if cancellationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CANCELLATION", "Cancellation ID cannot be empty")
	}
	if installmentNumber < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_COUNT", "Installment number must be positive")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	r := &Refund{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RefundNumber:      refundNumber,
		CancellationID:    cancellationID,
		SaleID:            saleID,
		ClientName:        clientName,
		InstallmentNumber: installmentNumber,
		Amount:            amount.Amount(),
		DueDate:           dueDate,
		Approval:          approval.NewFlow(),
		PaymentStatus:     RefundPaymentPending,
	}

	r.AddDomainEvent(NewRefundCreatedEvent(r))

	return r, nil
}

// Submit sends the refund installment into the approval chain
func (r *Refund) Submit(submittedBy uuid.UUID) error {
	if err := r.Approval.Submit(submittedBy); err != nil {
		return err
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewRefundSubmittedEvent(r))

	return nil
}

// Approve records one approval tier's decision. Returns the approval status
// the refund entered, so callers can react to the final APPROVED step.
func (r *Refund) Approve(actorID uuid.UUID, actorRole approval.Role, remarks string) (approval.Status, error) {
	entered, err := r.Approval.Approve(actorID, actorRole, remarks)
	if err != nil {
		return "", err
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	if entered == approval.StatusApproved {
		r.AddDomainEvent(NewRefundApprovedEvent(r))
	}

	return entered, nil
}

// Reject rejects the refund installment. A rejected installment will never
// be paid, so the payment axis is closed out as well.
func (r *Refund) Reject(actorID uuid.UUID, actorRole approval.Role, remarks string) error {
	if err := r.Approval.Reject(actorID, actorRole, remarks); err != nil {
		return err
	}

	r.PaymentStatus = RefundPaymentCancelled
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewRefundRejectedEvent(r))

	return nil
}

// MarkAsPaid records the payout of an approved refund installment
func (r *Refund) MarkAsPaid(
	paidBy uuid.UUID,
	paymentMethod PaymentMethod,
	paymentDate time.Time,
	transactionRef string,
	remarks string,
) error {
	if r.Approval.Status != approval.StatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay refund in %s approval status", r.Approval.Status))
	}
	if r.PaymentStatus != RefundPaymentPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay refund in %s payment status", r.PaymentStatus))
	}
	if paidBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Paying user ID is required")
	}
	if !paymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if paymentDate.IsZero() {
		return shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date is required")
	}

	r.PaymentStatus = RefundPaymentPaid
	r.PaymentMethod = &paymentMethod
	r.PaidDate = &paymentDate
	r.PaidBy = &paidBy
	r.TransactionRef = transactionRef
	if remarks != "" {
		r.Remarks = remarks
	}
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRefundPaidEvent(r))

	return nil
}

// Helper methods

// GetAmountMoney returns the installment amount as Money
func (r *Refund) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(r.Amount)
}

// ApprovalStatus returns the current approval status
func (r *Refund) ApprovalStatus() approval.Status {
	return r.Approval.Status
}

// IsPaid returns true once the installment has been paid out
func (r *Refund) IsPaid() bool {
	return r.PaymentStatus == RefundPaymentPaid
}

// IsPayable returns true if the installment is approved and awaiting payout
func (r *Refund) IsPayable() bool {
	return r.Approval.Status == approval.StatusApproved && r.PaymentStatus == RefundPaymentPending
}
