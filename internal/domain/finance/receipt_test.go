package finance

import (
	"testing"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReceipt(t *testing.T) *Receipt {
	t.Helper()
	r, err := NewReceipt(
		"RCP-2026-0001",
		uuid.New(),
		uuid.New(),
		"Ramesh Gupta",
		valueobject.NewMoneyINRFromInt(50000),
		PaymentMethodUPI,
		time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return r
}

func TestNewReceipt(t *testing.T) {
	r := newTestReceipt(t)

	assert.True(t, r.IsDraft())
	assert.False(t, r.PostedToLedger)
	assert.Equal(t, 1, r.GetVersion())
}

func TestNewReceipt_Validation(t *testing.T) {
	amount := valueobject.NewMoneyINRFromInt(50000)
	date := time.Now()

	_, err := NewReceipt("", uuid.New(), uuid.New(), "C", amount, PaymentMethodCash, date)
	assert.Error(t, err)

	_, err = NewReceipt("RCP-1", uuid.Nil, uuid.New(), "C", amount, PaymentMethodCash, date)
	assert.Error(t, err)

	_, err = NewReceipt("RCP-1", uuid.New(), uuid.New(), "C", valueobject.ZeroINR(), PaymentMethodCash, date)
	assertDomainCode(t, err, "INVALID_AMOUNT")

	_, err = NewReceipt("RCP-1", uuid.New(), uuid.New(), "C", amount, PaymentMethod("BARTER"), date)
	assertDomainCode(t, err, "INVALID_PAYMENT_METHOD")
}

func TestReceipt_ApprovalAndPosting(t *testing.T) {
	r := newTestReceipt(t)
	require.NoError(t, r.Submit(uuid.New()))

	// posting before final approval is refused
	err := r.MarkPostedToLedger(time.Now())
	assertDomainCode(t, err, "INVALID_STATE")

	_, err = r.Approve(uuid.New(), approval.RoleAccountManager, "")
	require.NoError(t, err)
	entered, err := r.Approve(uuid.New(), approval.RoleAdmin, "")
	require.NoError(t, err)
	require.Equal(t, approval.StatusApproved, entered)

	postedAt := time.Now()
	require.NoError(t, r.MarkPostedToLedger(postedAt))
	assert.True(t, r.PostedToLedger)
	assert.Equal(t, postedAt, *r.PostedAt)

	// posting is once-only
	err = r.MarkPostedToLedger(time.Now())
	assertDomainCode(t, err, "INVALID_STATE")
}

func TestReceipt_Reject(t *testing.T) {
	r := newTestReceipt(t)
	require.NoError(t, r.Submit(uuid.New()))

	require.NoError(t, r.Reject(uuid.New(), approval.RoleAccountManager, "wrong sale reference"))
	assert.Equal(t, approval.StatusRejected, r.ApprovalStatus())
	assert.False(t, r.PostedToLedger)

	err := r.SetRemarks("late note")
	assertDomainCode(t, err, "INVALID_STATE")
}

func TestReceipt_SetPaymentReference(t *testing.T) {
	r := newTestReceipt(t)
	require.NoError(t, r.SetPaymentReference("UPI-20260801-4411"))
	assert.Equal(t, "UPI-20260801-4411", r.PaymentReference)
}
