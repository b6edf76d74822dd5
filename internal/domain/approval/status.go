package approval

// Status represents the approval state of a financial document.
// Receipts, expenses and refunds all move through the same two-tier chain:
// account manager first, head of finance second.
type Status string

const (
	StatusDraft           Status = "DRAFT"            // Not yet submitted
	StatusPendingAccounts Status = "PENDING_ACCOUNTS" // Awaiting account manager decision
	StatusPendingHOF      Status = "PENDING_HOF"      // Awaiting head of finance decision
	StatusApproved        Status = "APPROVED"         // Fully approved (terminal)
	StatusRejected        Status = "REJECTED"         // Rejected at either tier (terminal)
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingAccounts, StatusPendingHOF, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition is defined out of the status
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// IsPending returns true if the document is awaiting a decision
func (s Status) IsPending() bool {
	return s == StatusPendingAccounts || s == StatusPendingHOF
}

// CanSubmit returns true if the document can be submitted for approval
func (s Status) CanSubmit() bool {
	return s == StatusDraft
}

// Next returns the status entered when the current pending tier approves
func (s Status) Next() Status {
	switch s {
	case StatusPendingAccounts:
		return StatusPendingHOF
	case StatusPendingHOF:
		return StatusApproved
	}
	return s
}

// Level identifies the approval tier that recorded a decision
type Level string

const (
	LevelAccounts Level = "ACCOUNTS"
	LevelHOF      Level = "HOF"
)

// String returns the string representation of Level
func (l Level) String() string {
	return string(l)
}

// RequiredLevel returns the tier whose decision is awaited in the given
// status. The second return is false when the status is not pending.
func RequiredLevel(s Status) (Level, bool) {
	switch s {
	case StatusPendingAccounts:
		return LevelAccounts, true
	case StatusPendingHOF:
		return LevelHOF, true
	}
	return "", false
}
