package finance

import (
	"context"
	"errors"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	ledger      finance.LedgerPoster
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, ledger finance.LedgerPoster) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		ledger:      ledger,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID              uuid.UUID              `json:"id"`
	ExpenseNumber   string                 `json:"expense_number"`
	Category        string                 `json:"category"`
	PaidTo          string                 `json:"paid_to"`
	Amount          decimal.Decimal        `json:"amount"`
	PaymentMethod   string                 `json:"payment_method"`
	ExpenseDate     time.Time              `json:"expense_date"`
	Description     string                 `json:"description,omitempty"`
	ApprovalStatus  string                 `json:"approval_status"`
	SubmittedAt     *time.Time             `json:"submitted_at,omitempty"`
	ApprovalHistory []ApprovalHistoryEntry `json:"approval_history"`
	PostedToLedger  bool                   `json:"posted_to_ledger"`
	PostedAt        *time.Time             `json:"posted_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Version         int                    `json:"version"`
}

// CreateExpenseRequest represents a request to create an expense
type CreateExpenseRequest struct {
	Category      string          `json:"category" binding:"required"`
	PaidTo        string          `json:"paid_to" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	ExpenseDate   time.Time       `json:"expense_date" binding:"required"`
	Description   string          `json:"description"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Search         string     `form:"search"`
	Category       string     `form:"category"`
	ApprovalStatus string     `form:"approval_status"`
	FromDate       *time.Time `form:"from_date"`
	ToDate         *time.Time `form:"to_date"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
}

// CreateExpense creates a new expense in draft
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expenseNumber, err := s.expenseRepo.GenerateExpenseNumber(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(
		expenseNumber,
		finance.ExpenseCategory(req.Category),
		req.PaidTo,
		valueobject.NewMoneyINR(req.Amount),
		finance.PaymentMethod(req.PaymentMethod),
		req.ExpenseDate,
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	return toExpenseResponse(expense), nil
}

// GetExpenseByID gets an expense by ID
func (s *ExpenseService) GetExpenseByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := finance.ExpenseFilter{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Category != "" {
		category := finance.ExpenseCategory(filter.Category)
		domainFilter.Category = &category
	}
	if filter.ApprovalStatus != "" {
		status := approval.Status(filter.ApprovalStatus)
		domainFilter.ApprovalStatus = &status
	}

	items, err := s.expenseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.expenseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(items))
	for i := range items {
		responses[i] = *toExpenseResponse(&items[i])
	}

	return responses, total, nil
}

// UpdateExpenseRequest represents an edit to a draft expense
type UpdateExpenseRequest struct {
	Description *string `json:"description"`
}

// UpdateExpense edits a draft expense's description
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if err := expense.SetDescription(*req.Description); err != nil {
			return nil, err
		}

		if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
			return nil, err
		}
	}

	return toExpenseResponse(expense), nil
}

// SubmitExpense submits an expense for approval
func (s *ExpenseService) SubmitExpense(ctx context.Context, id, userID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Submit(userID); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}

	return toExpenseResponse(expense), nil
}

// ApproveExpense records one approval tier's decision. On the final
// approval the expense is posted to the ledger; the optimistic save
// establishes a single winner, so posting fires at most once.
func (s *ExpenseService) ApproveExpense(ctx context.Context, id, userID uuid.UUID, actorRole approval.Role, remarks string) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	entered, err := expense.Approve(userID, actorRole, remarks)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}

	if entered == approval.StatusApproved {
		if err := s.ledger.PostExpense(ctx, expense); err != nil {
			return nil, err
		}
		if err := s.flagExpensePosted(ctx, expense); err != nil {
			return nil, err
		}
	}

	return toExpenseResponse(expense), nil
}

// flagExpensePosted marks the expense as posted. The ledger entry is already
// durable here, so a lost version race on the expense is retried against a
// fresh copy instead of leaving an approved expense with a stale flag.
func (s *ExpenseService) flagExpensePosted(ctx context.Context, expense *finance.Expense) error {
	if err := expense.MarkPostedToLedger(time.Now()); err != nil {
		return err
	}
	err := s.expenseRepo.SaveWithLock(ctx, expense)
	for attempt := 0; errors.Is(err, shared.ErrConcurrencyConflict) && attempt < versionRetryLimit; attempt++ {
		fresh, ferr := s.findExpense(ctx, expense.ID)
		if ferr != nil {
			return ferr
		}
		if fresh.PostedToLedger {
			return nil
		}
		if err = fresh.MarkPostedToLedger(time.Now()); err != nil {
			return err
		}
		err = s.expenseRepo.SaveWithLock(ctx, fresh)
	}
	return err
}

// RejectExpense rejects an expense
func (s *ExpenseService) RejectExpense(ctx context.Context, id, userID uuid.UUID, actorRole approval.Role, remarks string) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Reject(userID, actorRole, remarks); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}

	return toExpenseResponse(expense), nil
}

func (s *ExpenseService) findExpense(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return expense, nil
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:              e.ID,
		ExpenseNumber:   e.ExpenseNumber,
		Category:        e.Category.String(),
		PaidTo:          e.PaidTo,
		Amount:          e.Amount,
		PaymentMethod:   e.PaymentMethod.String(),
		ExpenseDate:     e.ExpenseDate,
		Description:     e.Description,
		ApprovalStatus:  e.Approval.Status.String(),
		SubmittedAt:     e.Approval.SubmittedAt,
		ApprovalHistory: toApprovalHistory(e.Approval.History),
		PostedToLedger:  e.PostedToLedger,
		PostedAt:        e.PostedAt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.GetVersion(),
	}
}
