package approval

import (
	"testing"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submittedFlow(t *testing.T) *Flow {
	f := NewFlow()
	require.NoError(t, f.Submit(uuid.New()))
	return &f
}

func hofPendingFlow(t *testing.T) *Flow {
	f := submittedFlow(t)
	_, err := f.Approve(uuid.New(), RoleAccountManager, "")
	require.NoError(t, err)
	return f
}

// ============================================
// Status Tests
// ============================================

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusDraft, true},
		{StatusPendingAccounts, true},
		{StatusPendingHOF, true},
		{StatusApproved, true},
		{StatusRejected, true},
		{Status("INVALID"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status     Status
		isTerminal bool
	}{
		{StatusDraft, false},
		{StatusPendingAccounts, false},
		{StatusPendingHOF, false},
		{StatusApproved, true},
		{StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestRequiredLevel(t *testing.T) {
	level, ok := RequiredLevel(StatusPendingAccounts)
	assert.True(t, ok)
	assert.Equal(t, LevelAccounts, level)

	level, ok = RequiredLevel(StatusPendingHOF)
	assert.True(t, ok)
	assert.Equal(t, LevelHOF, level)

	_, ok = RequiredLevel(StatusDraft)
	assert.False(t, ok)
	_, ok = RequiredLevel(StatusApproved)
	assert.False(t, ok)
	_, ok = RequiredLevel(StatusRejected)
	assert.False(t, ok)
}

// ============================================
// Role Tests
// ============================================

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		status Status
		want   bool
	}{
		{"account manager at accounts tier", RoleAccountManager, StatusPendingAccounts, true},
		{"account manager at hof tier", RoleAccountManager, StatusPendingHOF, false},
		{"hof at accounts tier", RoleHOF, StatusPendingAccounts, false},
		{"hof at hof tier", RoleHOF, StatusPendingHOF, true},
		{"admin at hof tier", RoleAdmin, StatusPendingHOF, true},
		{"admin at accounts tier", RoleAdmin, StatusPendingAccounts, false},
		{"nobody approves a draft", RoleAdmin, StatusDraft, false},
		{"nobody approves an approved document", RoleHOF, StatusApproved, false},
		{"nobody approves a rejected document", RoleHOF, StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanApprove(tt.role, tt.status))
		})
	}
}

func TestPendingStatusFor(t *testing.T) {
	status, ok := PendingStatusFor(RoleAccountManager)
	assert.True(t, ok)
	assert.Equal(t, StatusPendingAccounts, status)

	status, ok = PendingStatusFor(RoleHOF)
	assert.True(t, ok)
	assert.Equal(t, StatusPendingHOF, status)

	status, ok = PendingStatusFor(RoleAdmin)
	assert.True(t, ok)
	assert.Equal(t, StatusPendingHOF, status)

	_, ok = PendingStatusFor(Role("SALES_AGENT"))
	assert.False(t, ok)
}

// ============================================
// Flow Tests
// ============================================

func TestFlow_Submit(t *testing.T) {
	f := NewFlow()
	err := f.Submit(uuid.New())

	require.NoError(t, err)
	assert.Equal(t, StatusPendingAccounts, f.Status)
	assert.NotNil(t, f.SubmittedAt)
	assert.NotNil(t, f.SubmittedBy)
}

func TestFlow_Submit_NotDraft(t *testing.T) {
	f := submittedFlow(t)
	err := f.Submit(uuid.New())

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestFlow_Submit_NilUser(t *testing.T) {
	f := NewFlow()
	err := f.Submit(uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, StatusDraft, f.Status)
}

func TestFlow_Approve_FullChain(t *testing.T) {
	f := submittedFlow(t)

	entered, err := f.Approve(uuid.New(), RoleAccountManager, "looks good")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingHOF, entered)

	entered, err = f.Approve(uuid.New(), RoleHOF, "")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, entered)

	require.Len(t, f.History, 2)
	assert.Equal(t, LevelAccounts, f.History[0].Level)
	assert.Equal(t, ActionApproved, f.History[0].Action)
	assert.Equal(t, LevelHOF, f.History[1].Level)
	assert.Equal(t, ActionApproved, f.History[1].Action)
}

func TestFlow_Approve_AdminAtHOFTier(t *testing.T) {
	f := hofPendingFlow(t)
	entered, err := f.Approve(uuid.New(), RoleAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, entered)
}

func TestFlow_Approve_Draft(t *testing.T) {
	f := NewFlow()
	_, err := f.Approve(uuid.New(), RoleAccountManager, "")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestFlow_Approve_WrongRole(t *testing.T) {
	f := hofPendingFlow(t)
	_, err := f.Approve(uuid.New(), RoleAccountManager, "")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	assert.Equal(t, StatusPendingHOF, f.Status)
	assert.Len(t, f.History, 1) // only the accounts-tier entry
}

func TestFlow_Reject_RequiresRemarks(t *testing.T) {
	f := submittedFlow(t)
	err := f.Reject(uuid.New(), RoleAccountManager, "   ")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_REASON", domainErr.Code)
	assert.Equal(t, StatusPendingAccounts, f.Status)
	assert.Empty(t, f.History)
}

func TestFlow_Reject_FromEitherTier(t *testing.T) {
	f := submittedFlow(t)
	require.NoError(t, f.Reject(uuid.New(), RoleAccountManager, "incomplete documents"))
	assert.Equal(t, StatusRejected, f.Status)

	f = hofPendingFlow(t)
	require.NoError(t, f.Reject(uuid.New(), RoleHOF, "amount mismatch"))
	assert.Equal(t, StatusRejected, f.Status)
	require.Len(t, f.History, 2)
	assert.Equal(t, ActionRejected, f.History[1].Action)
	assert.Equal(t, "amount mismatch", f.History[1].Remarks)
}

func TestFlow_Rejected_IsTerminal(t *testing.T) {
	f := submittedFlow(t)
	require.NoError(t, f.Reject(uuid.New(), RoleAccountManager, "duplicate entry"))

	_, err := f.Approve(uuid.New(), RoleHOF, "")
	assert.Error(t, err)
	err = f.Reject(uuid.New(), RoleHOF, "again")
	assert.Error(t, err)
	err = f.Submit(uuid.New())
	assert.Error(t, err)
	assert.Equal(t, StatusRejected, f.Status)
	assert.Len(t, f.History, 1)
}

func TestFlow_Approved_IsTerminal(t *testing.T) {
	f := hofPendingFlow(t)
	_, err := f.Approve(uuid.New(), RoleHOF, "")
	require.NoError(t, err)

	_, err = f.Approve(uuid.New(), RoleHOF, "")
	assert.Error(t, err)
	err = f.Reject(uuid.New(), RoleHOF, "too late")
	assert.Error(t, err)
	err = f.Submit(uuid.New())
	assert.Error(t, err)
}

func TestFlow_HistoryAtLevel(t *testing.T) {
	f := hofPendingFlow(t)
	_, err := f.Approve(uuid.New(), RoleHOF, "final")
	require.NoError(t, err)

	assert.Len(t, f.HistoryAtLevel(LevelAccounts), 1)
	assert.Len(t, f.HistoryAtLevel(LevelHOF), 1)
}
