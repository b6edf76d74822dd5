package finance

import (
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCreatedEvent is raised when a new expense is recorded
type ExpenseCreatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      ExpenseCategory `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	PaidTo        string          `json:"paid_to"`
}

// EventType returns the event type name
func (e *ExpenseCreatedEvent) EventType() string {
	return "ExpenseCreated"
}

// NewExpenseCreatedEvent creates a new ExpenseCreatedEvent
func NewExpenseCreatedEvent(ex *Expense) *ExpenseCreatedEvent {
	return &ExpenseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ExpenseCreated", "Expense", ex.ID),
		ExpenseID:       ex.ID,
		ExpenseNumber:   ex.ExpenseNumber,
		Category:        ex.Category,
		Amount:          ex.Amount,
		PaidTo:          ex.PaidTo,
	}
}

// ExpenseSubmittedEvent is raised when an expense enters the approval chain
type ExpenseSubmittedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      ExpenseCategory `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	SubmittedBy   uuid.UUID       `json:"submitted_by"`
}

// EventType returns the event type name
func (e *ExpenseSubmittedEvent) EventType() string {
	return "ExpenseSubmitted"
}

// NewExpenseSubmittedEvent creates a new ExpenseSubmittedEvent
func NewExpenseSubmittedEvent(ex *Expense) *ExpenseSubmittedEvent {
	var submittedBy uuid.UUID
	if ex.Approval.SubmittedBy != nil {
		submittedBy = *ex.Approval.SubmittedBy
	}
	return &ExpenseSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ExpenseSubmitted", "Expense", ex.ID),
		ExpenseID:       ex.ID,
		ExpenseNumber:   ex.ExpenseNumber,
		Category:        ex.Category,
		Amount:          ex.Amount,
		SubmittedBy:     submittedBy,
	}
}

// ExpenseApprovedEvent is raised when an expense clears the full approval chain
type ExpenseApprovedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      ExpenseCategory `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *ExpenseApprovedEvent) EventType() string {
	return "ExpenseApproved"
}

// NewExpenseApprovedEvent creates a new ExpenseApprovedEvent
func NewExpenseApprovedEvent(ex *Expense) *ExpenseApprovedEvent {
	return &ExpenseApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ExpenseApproved", "Expense", ex.ID),
		ExpenseID:       ex.ID,
		ExpenseNumber:   ex.ExpenseNumber,
		Category:        ex.Category,
		Amount:          ex.Amount,
	}
}

// ExpenseRejectedEvent is raised when an expense is rejected at any tier
type ExpenseRejectedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      ExpenseCategory `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *ExpenseRejectedEvent) EventType() string {
	return "ExpenseRejected"
}

// NewExpenseRejectedEvent creates a new ExpenseRejectedEvent
func NewExpenseRejectedEvent(ex *Expense) *ExpenseRejectedEvent {
	return &ExpenseRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ExpenseRejected", "Expense", ex.ID),
		ExpenseID:       ex.ID,
		ExpenseNumber:   ex.ExpenseNumber,
		Category:        ex.Category,
		Amount:          ex.Amount,
	}
}
