package approval

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action records which decision a history entry captures
type Action string

const (
	ActionApproved Action = "APPROVED"
	ActionRejected Action = "REJECTED"
)

// HistoryEntry is one decision in a document's approval log.
// The log is append-only; entries are never mutated or deleted.
type HistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	ActorRole Role      `json:"actor_role"`
	Level     Level     `json:"level"`
	Action    Action    `json:"action"`
	Remarks   string    `json:"remarks"`
	DecidedAt time.Time `json:"decided_at"`
}

// History is the ordered approval log of a document
type History []HistoryEntry

// Value implements driver.Valuer interface for GORM to store as JSONB
func (h History) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (h *History) Scan(value interface{}) error {
	if value == nil {
		*h = History{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan History: unsupported type")
	}

	if len(bytes) == 0 {
		*h = History{}
		return nil
	}

	return json.Unmarshal(bytes, h)
}

// Flow carries the approval state shared by all approvable documents.
// Aggregates embed it and delegate their Submit/Approve/Reject operations;
// the embedding aggregate remains responsible for version bumps and events.
type Flow struct {
	Status      Status     `json:"status"`
	SubmittedAt *time.Time `json:"submitted_at"`
	SubmittedBy *uuid.UUID `json:"submitted_by"`
	History     History    `json:"history"`
}

// NewFlow returns a flow in the initial Draft state
func NewFlow() Flow {
	return Flow{
		Status:  StatusDraft,
		History: make(History, 0),
	}
}

// Submit moves the document from Draft into the account manager's queue
func (f *Flow) Submit(submittedBy uuid.UUID) error {
	if !f.Status.CanSubmit() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit document in %s status", f.Status))
	}
	if submittedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Submitter user ID cannot be empty")
	}

	now := time.Now()
	f.Status = StatusPendingAccounts
	f.SubmittedAt = &now
	f.SubmittedBy = &submittedBy

	return nil
}

// Approve records the current tier's approval and advances the chain.
// It returns the status entered, so callers can react when the document
// first reaches Approved (ledger posting, payment eligibility).
func (f *Flow) Approve(actorID uuid.UUID, actorRole Role, remarks string) (Status, error) {
	level, ok := RequiredLevel(f.Status)
	if !ok {
		return f.Status, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve document in %s status", f.Status))
	}
	if actorID == uuid.Nil {
		return f.Status, shared.NewDomainError("INVALID_USER", "Approver user ID cannot be empty")
	}
	if !CanApprove(actorRole, f.Status) {
		return f.Status, shared.NewDomainError("FORBIDDEN", fmt.Sprintf("Role %s cannot approve a document awaiting %s", actorRole, level))
	}

	f.History = append(f.History, HistoryEntry{
		ID:        uuid.New(),
		ActorID:   actorID,
		ActorRole: actorRole,
		Level:     level,
		Action:    ActionApproved,
		Remarks:   remarks,
		DecidedAt: time.Now(),
	})
	f.Status = f.Status.Next()

	return f.Status, nil
}

// Reject records a rejection and moves the document to the terminal
// Rejected state regardless of which pending tier it was in. Remarks are
// mandatory.
func (f *Flow) Reject(actorID uuid.UUID, actorRole Role, remarks string) error {
	level, ok := RequiredLevel(f.Status)
	if !ok {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject document in %s status", f.Status))
	}
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Rejector user ID cannot be empty")
	}
	if !CanApprove(actorRole, f.Status) {
		return shared.NewDomainError("FORBIDDEN", fmt.Sprintf("Role %s cannot reject a document awaiting %s", actorRole, level))
	}
	if strings.TrimSpace(remarks) == "" {
		return shared.NewDomainError("MISSING_REASON", "Rejection remarks are required")
	}

	f.History = append(f.History, HistoryEntry{
		ID:        uuid.New(),
		ActorID:   actorID,
		ActorRole: actorRole,
		Level:     level,
		Action:    ActionRejected,
		Remarks:   remarks,
		DecidedAt: time.Now(),
	})
	f.Status = StatusRejected

	return nil
}

// HistoryAtLevel returns the entries recorded at the given tier
func (f *Flow) HistoryAtLevel(level Level) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(f.History))
	for _, e := range f.History {
		if e.Level == level {
			entries = append(entries, e)
		}
	}
	return entries
}
