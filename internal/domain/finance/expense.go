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

// ExpenseCategory classifies an expense for reporting
type ExpenseCategory string

const (
	ExpenseCategorySalary      ExpenseCategory = "SALARY"      // Staff salaries
	ExpenseCategoryCommission  ExpenseCategory = "COMMISSION"  // Agent commission
	ExpenseCategoryOffice      ExpenseCategory = "OFFICE"      // Rent, utilities, supplies
	ExpenseCategoryDevelopment ExpenseCategory = "DEVELOPMENT" // Land development work
	ExpenseCategoryMarketing   ExpenseCategory = "MARKETING"   // Advertising and promotion
	ExpenseCategoryLegal       ExpenseCategory = "LEGAL"       // Registration, documentation
	ExpenseCategoryOther       ExpenseCategory = "OTHER"       // Everything else
)

// IsValid checks if the expense category is valid
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategorySalary, ExpenseCategoryCommission, ExpenseCategoryOffice,
		ExpenseCategoryDevelopment, ExpenseCategoryMarketing, ExpenseCategoryLegal,
		ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// Expense represents money paid out by the office. Like receipts, expenses
// clear the approval chain before they are posted to the ledger.
type Expense struct {
	shared.BaseAggregateRoot
	ExpenseNumber  string          `json:"expense_number"`
	Category       ExpenseCategory `json:"category"`
	PaidTo         string          `json:"paid_to"` // Vendor, employee, agency
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	ExpenseDate    time.Time       `json:"expense_date"`
	Description    string          `json:"description"`
	Approval       approval.Flow   `json:"approval"`
	PostedToLedger bool            `json:"posted_to_ledger"`
	PostedAt       *time.Time      `json:"posted_at"`
}

// NewExpense creates a new expense in draft
func NewExpense(
	expenseNumber string,
	category ExpenseCategory,
	paidTo string,
	amount valueobject.Money,
	paymentMethod PaymentMethod,
	expenseDate time.Time,
	description string,
) (*Expense, error) {
	if expenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot be empty")
	}
	if len(expenseNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot exceed 50 characters")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if paidTo == "" {
		return nil, shared.NewDomainError("INVALID_PAYEE", "Payee cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if expenseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_DATE", "Expense date is required")
	}

	e := &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExpenseNumber:     expenseNumber,
		Category:          category,
		PaidTo:            paidTo,
		Amount:            amount.Amount(),
		PaymentMethod:     paymentMethod,
		ExpenseDate:       expenseDate,
		Description:       description,
		Approval:          approval.NewFlow(),
	}

	e.AddDomainEvent(NewExpenseCreatedEvent(e))

	return e, nil
}

// Submit sends the expense into the approval chain
func (e *Expense) Submit(submittedBy uuid.UUID) error {
	if err := e.Approval.Submit(submittedBy); err != nil {
		return err
	}

	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewExpenseSubmittedEvent(e))

	return nil
}

// Approve records one approval tier's decision. Returns the approval status
// the expense entered; callers post to the ledger on the final APPROVED step.
func (e *Expense) Approve(actorID uuid.UUID, actorRole approval.Role, remarks string) (approval.Status, error) {
	entered, err := e.Approval.Approve(actorID, actorRole, remarks)
	if err != nil {
		return "", err
	}

	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	if entered == approval.StatusApproved {
		e.AddDomainEvent(NewExpenseApprovedEvent(e))
	}

	return entered, nil
}

// Reject rejects the expense
func (e *Expense) Reject(actorID uuid.UUID, actorRole approval.Role, remarks string) error {
	if err := e.Approval.Reject(actorID, actorRole, remarks); err != nil {
		return err
	}

	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewExpenseRejectedEvent(e))

	return nil
}

// MarkPostedToLedger records that the expense has been reflected in the
// accounting ledger. Fired exactly once, after final approval.
func (e *Expense) MarkPostedToLedger(postedAt time.Time) error {
	if e.Approval.Status != approval.StatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post expense in %s approval status", e.Approval.Status))
	}
	if e.PostedToLedger {
		return shared.NewDomainError("INVALID_STATE", "Expense is already posted to the ledger")
	}

	e.PostedToLedger = true
	e.PostedAt = &postedAt
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetDescription updates the expense description
func (e *Expense) SetDescription(description string) error {
	if e.Approval.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify expense in terminal state")
	}

	e.Description = description
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Helper methods

// GetAmountMoney returns the expense amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(e.Amount)
}

// ApprovalStatus returns the current approval status
func (e *Expense) ApprovalStatus() approval.Status {
	return e.Approval.Status
}

// IsDraft returns true if the expense has not been submitted yet
func (e *Expense) IsDraft() bool {
	return e.Approval.Status == approval.StatusDraft
}
