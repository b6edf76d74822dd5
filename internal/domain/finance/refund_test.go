package finance

import (
	"testing"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRefund(t *testing.T) *Refund {
	t.Helper()
	r, err := NewRefund(
		"REF-2026-0001",
		uuid.New(),
		uuid.New(),
		"Ramesh Gupta",
		1,
		valueobject.NewMoneyINRFromInt(60000),
		time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return r
}

func approvedRefund(t *testing.T) *Refund {
	t.Helper()
	r := newTestRefund(t)
	require.NoError(t, r.Submit(uuid.New()))
	_, err := r.Approve(uuid.New(), approval.RoleAccountManager, "")
	require.NoError(t, err)
	_, err = r.Approve(uuid.New(), approval.RoleHOF, "")
	require.NoError(t, err)
	return r
}

func TestNewRefund(t *testing.T) {
	r := newTestRefund(t)

	assert.Equal(t, approval.StatusDraft, r.ApprovalStatus())
	assert.Equal(t, RefundPaymentPending, r.PaymentStatus)
	assert.Equal(t, 1, r.InstallmentNumber)
	assert.True(t, r.Amount.Equal(decimal.NewFromInt(60000)))
	assert.False(t, r.IsPayable())
}

func TestNewRefund_Validation(t *testing.T) {
	amount := valueobject.NewMoneyINRFromInt(60000)
	due := time.Now().AddDate(0, 1, 0)

	_, err := NewRefund("", uuid.New(), uuid.New(), "C", 1, amount, due)
	assert.Error(t, err)

	_, err = NewRefund("REF-1", uuid.Nil, uuid.New(), "C", 1, amount, due)
	assert.Error(t, err)

	_, err = NewRefund("REF-1", uuid.New(), uuid.New(), "C", 0, amount, due)
	assert.Error(t, err)

	_, err = NewRefund("REF-1", uuid.New(), uuid.New(), "C", 1, valueobject.ZeroINR(), due)
	assert.Error(t, err)

	_, err = NewRefund("REF-1", uuid.New(), uuid.New(), "C", 1, valueobject.NewMoneyINRFromInt(-5), due)
	assert.Error(t, err)

	_, err = NewRefund("REF-1", uuid.New(), uuid.New(), "C", 1, amount, time.Time{})
	assert.Error(t, err)
}

func TestRefund_ApprovalChain(t *testing.T) {
	r := newTestRefund(t)
	require.NoError(t, r.Submit(uuid.New()))
	assert.Equal(t, approval.StatusPendingAccounts, r.ApprovalStatus())

	entered, err := r.Approve(uuid.New(), approval.RoleAccountManager, "")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusPendingHOF, entered)

	entered, err = r.Approve(uuid.New(), approval.RoleHOF, "")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, entered)
	assert.True(t, r.IsPayable())
}

func TestRefund_Reject_ClosesPaymentAxis(t *testing.T) {
	r := newTestRefund(t)
	require.NoError(t, r.Submit(uuid.New()))

	require.NoError(t, r.Reject(uuid.New(), approval.RoleAccountManager, "schedule disputed"))
	assert.Equal(t, approval.StatusRejected, r.ApprovalStatus())
	assert.Equal(t, RefundPaymentCancelled, r.PaymentStatus)

	err := r.MarkAsPaid(uuid.New(), PaymentMethodCash, time.Now(), "", "")
	assertDomainCode(t, err, "INVALID_STATE")
}

func TestRefund_MarkAsPaid(t *testing.T) {
	r := approvedRefund(t)
	payer := uuid.New()
	paymentDate := time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.MarkAsPaid(payer, PaymentMethodBankTransfer, paymentDate, "TXN-8841", "first installment"))

	assert.Equal(t, RefundPaymentPaid, r.PaymentStatus)
	assert.Equal(t, PaymentMethodBankTransfer, *r.PaymentMethod)
	assert.Equal(t, paymentDate, *r.PaidDate)
	assert.Equal(t, payer, *r.PaidBy)
	assert.Equal(t, "TXN-8841", r.TransactionRef)
	assert.True(t, r.IsPaid())
}

func TestRefund_MarkAsPaid_RequiresApproval(t *testing.T) {
	r := newTestRefund(t)
	require.NoError(t, r.Submit(uuid.New()))

	err := r.MarkAsPaid(uuid.New(), PaymentMethodCash, time.Now(), "", "")
	assertDomainCode(t, err, "INVALID_STATE")
	assert.Equal(t, RefundPaymentPending, r.PaymentStatus)
}

func TestRefund_MarkAsPaid_Twice(t *testing.T) {
	r := approvedRefund(t)
	require.NoError(t, r.MarkAsPaid(uuid.New(), PaymentMethodCash, time.Now(), "", ""))

	err := r.MarkAsPaid(uuid.New(), PaymentMethodCash, time.Now(), "", "")
	assertDomainCode(t, err, "INVALID_STATE")
}

func TestRefund_MarkAsPaid_Validation(t *testing.T) {
	r := approvedRefund(t)

	err := r.MarkAsPaid(uuid.Nil, PaymentMethodCash, time.Now(), "", "")
	assert.Error(t, err)

	err = r.MarkAsPaid(uuid.New(), PaymentMethod("CRYPTO"), time.Now(), "", "")
	assertDomainCode(t, err, "INVALID_PAYMENT_METHOD")

	err = r.MarkAsPaid(uuid.New(), PaymentMethodCash, time.Time{}, "", "")
	assert.Error(t, err)

	assert.Equal(t, RefundPaymentPending, r.PaymentStatus)
}
