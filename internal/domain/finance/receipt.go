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

// Receipt represents money received from a client, usually an installment
// payment against a sale. It is posted to the ledger only after clearing
// the approval chain.
type Receipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber    string          `json:"receipt_number"`
	SaleID           uuid.UUID       `json:"sale_id"`
	ClientID         uuid.UUID       `json:"client_id"`
	ClientName       string          `json:"client_name"` // Denormalized for display
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	PaymentReference string          `json:"payment_reference"` // Bank txn, cheque number
	ReceiptDate      time.Time       `json:"receipt_date"`
	Remarks          string          `json:"remarks"`
	Approval         approval.Flow   `json:"approval"`
	PostedToLedger   bool            `json:"posted_to_ledger"`
	PostedAt         *time.Time      `json:"posted_at"`
}

// NewReceipt creates a new receipt in draft
func NewReceipt(
	receiptNumber string,
	saleID uuid.UUID,
	clientID uuid.UUID,
	clientName string,
	amount valueobject.Money,
	paymentMethod PaymentMethod,
	receiptDate time.Time,
) (*Receipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if len(receiptNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot exceed 50 characters")
	}
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if receiptDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_RECEIPT_DATE", "Receipt date is required")
	}

	r := &Receipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		SaleID:            saleID,
		ClientID:          clientID,
		ClientName:        clientName,
		Amount:            amount.Amount(),
		PaymentMethod:     paymentMethod,
		ReceiptDate:       receiptDate,
		Approval:          approval.NewFlow(),
	}

	r.AddDomainEvent(NewReceiptCreatedEvent(r))

	return r, nil
}

// Submit sends the receipt into the approval chain
func (r *Receipt) Submit(submittedBy uuid.UUID) error {
	if err := r.Approval.Submit(submittedBy); err != nil {
		return err
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewReceiptSubmittedEvent(r))

	return nil
}

// Approve records one approval tier's decision. Returns the approval status
// the receipt entered; callers post to the ledger on the final APPROVED step.
func (r *Receipt) Approve(actorID uuid.UUID, actorRole approval.Role, remarks string) (approval.Status, error) {
	entered, err := r.Approval.Approve(actorID, actorRole, remarks)
	if err != nil {
		return "", err
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	if entered == approval.StatusApproved {
		r.AddDomainEvent(NewReceiptApprovedEvent(r))
	}

	return entered, nil
}

// Reject rejects the receipt
func (r *Receipt) Reject(actorID uuid.UUID, actorRole approval.Role, remarks string) error {
	if err := r.Approval.Reject(actorID, actorRole, remarks); err != nil {
		return err
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewReceiptRejectedEvent(r))

	return nil
}

// MarkPostedToLedger records that the receipt has been reflected in the
// accounting ledger. Fired exactly once, after final approval.
func (r *Receipt) MarkPostedToLedger(postedAt time.Time) error {
	if r.Approval.Status != approval.StatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post receipt in %s approval status", r.Approval.Status))
	}
	if r.PostedToLedger {
		return shared.NewDomainError("INVALID_STATE", "Receipt is already posted to the ledger")
	}

	r.PostedToLedger = true
	r.PostedAt = &postedAt
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetPaymentReference sets the payment reference
func (r *Receipt) SetPaymentReference(reference string) error {
	if r.Approval.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify receipt in terminal state")
	}
	if len(reference) > 100 {
		return shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot exceed 100 characters")
	}

	r.PaymentReference = reference
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// UpdateDetails edits the draft-only fields in a single version step
func (r *Receipt) UpdateDetails(paymentReference, remarks *string) error {
	if !r.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft receipts can be edited")
	}
	if paymentReference != nil {
		if len(*paymentReference) > 100 {
			return shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot exceed 100 characters")
		}
		r.PaymentReference = *paymentReference
	}
	if remarks != nil {
		r.Remarks = *remarks
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetRemarks sets free-form remarks
func (r *Receipt) SetRemarks(remarks string) error {
	if r.Approval.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify receipt in terminal state")
	}

	r.Remarks = remarks
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Helper methods

// GetAmountMoney returns the receipt amount as Money
func (r *Receipt) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(r.Amount)
}

// ApprovalStatus returns the current approval status
func (r *Receipt) ApprovalStatus() approval.Status {
	return r.Approval.Status
}

// IsDraft returns true if the receipt has not been submitted yet
func (r *Receipt) IsDraft() bool {
	return r.Approval.Status == approval.StatusDraft
}
