package finance

import (
	"testing"
	"time"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// Office Charge Tests
// ============================================

func TestComputeOfficeCharge(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		percent string
		want    int64
	}{
		{"ten percent", 500000, "10", 50000},
		{"fractional percent rounds half up", 1001, "2.5", 25}, // 25.025 -> 25
		{"half rounds up", 150, "5", 8},                        // 7.5 -> 8
		{"zero percent", 500000, "0", 0},
		{"full percent", 500000, "100", 500000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, err := decimal.NewFromString(tt.percent)
			require.NoError(t, err)

			charge, err := ComputeOfficeCharge(valueobject.NewMoneyINRFromInt(tt.total), pct)
			require.NoError(t, err)
			assert.True(t, charge.Amount().Equal(decimal.NewFromInt(tt.want)),
				"got %s, want %d", charge.Amount(), tt.want)
		})
	}
}

func TestComputeOfficeCharge_InvalidPercent(t *testing.T) {
	total := valueobject.NewMoneyINRFromInt(100000)

	_, err := ComputeOfficeCharge(total, decimal.NewFromInt(-1))
	assertDomainCode(t, err, "INVALID_DEDUCTION")

	_, err = ComputeOfficeCharge(total, decimal.NewFromInt(101))
	assertDomainCode(t, err, "INVALID_DEDUCTION")
}

// ============================================
// Refundable Tests
// ============================================

func TestComputeRefundable(t *testing.T) {
	paid := valueobject.NewMoneyINRFromInt(100000)
	charge, err := ComputeOfficeCharge(paid, decimal.NewFromInt(10))
	require.NoError(t, err)

	refundable, err := ComputeRefundable(paid, charge, valueobject.ZeroINR())
	require.NoError(t, err)
	assert.True(t, refundable.Amount().Equal(decimal.NewFromInt(90000)))

	// other deductions stack on top of the office charge
	refundable, err = ComputeRefundable(paid, charge, valueobject.NewMoneyINRFromInt(5000))
	require.NoError(t, err)
	assert.True(t, refundable.Amount().Equal(decimal.NewFromInt(85000)))

	// full deduction leaves nothing to refund but is allowed
	refundable, err = ComputeRefundable(paid, paid, valueobject.ZeroINR())
	require.NoError(t, err)
	assert.True(t, refundable.IsZero())
}

func TestComputeRefundable_DeductionExceedsPaid(t *testing.T) {
	paid := valueobject.NewMoneyINRFromInt(100)

	_, err := ComputeRefundable(paid, valueobject.NewMoneyINRFromInt(101), valueobject.ZeroINR())
	assertDomainCode(t, err, "INVALID_DEDUCTION")

	_, err = ComputeRefundable(paid, valueobject.NewMoneyINRFromInt(50), valueobject.NewMoneyINRFromInt(51))
	assertDomainCode(t, err, "INVALID_DEDUCTION")
}

func TestComputeRefundable_NegativeDeduction(t *testing.T) {
	paid := valueobject.NewMoneyINRFromInt(100)

	_, err := ComputeRefundable(paid, valueobject.NewMoneyINRFromInt(-1), valueobject.ZeroINR())
	assertDomainCode(t, err, "INVALID_DEDUCTION")

	_, err = ComputeRefundable(paid, valueobject.ZeroINR(), valueobject.NewMoneyINRFromInt(-1))
	assertDomainCode(t, err, "INVALID_DEDUCTION")
}

// ============================================
// Installment Split Tests
// ============================================

func TestSplitIntoInstallments_RemainderToLast(t *testing.T) {
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	installments, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(1000), 3, start)
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.True(t, installments[0].Amount.Amount().Equal(decimal.NewFromInt(333)))
	assert.True(t, installments[1].Amount.Amount().Equal(decimal.NewFromInt(333)))
	assert.True(t, installments[2].Amount.Amount().Equal(decimal.NewFromInt(334)))

	assert.Equal(t, 1, installments[0].Sequence)
	assert.Equal(t, 3, installments[2].Sequence)
}

func TestSplitIntoInstallments_SumEqualsTotal(t *testing.T) {
	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	total := valueobject.NewMoneyINRFromInt(99999)

	for count := MinInstallments; count <= MaxInstallments; count++ {
		installments, err := SplitIntoInstallments(total, count, start)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, inst := range installments {
			sum = sum.Add(inst.Amount.Amount())
		}
		assert.True(t, sum.Equal(total.Amount()), "count=%d sum=%s", count, sum)

		// no installment differs from the others by more than the remainder
		base := installments[0].Amount.Amount()
		for _, inst := range installments[:count-1] {
			assert.True(t, inst.Amount.Amount().Equal(base))
		}
	}
}

func TestSplitIntoInstallments_ExactDivision(t *testing.T) {
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	installments, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(1200), 4, start)
	require.NoError(t, err)
	for _, inst := range installments {
		assert.True(t, inst.Amount.Amount().Equal(decimal.NewFromInt(300)))
	}
}

func TestSplitIntoInstallments_SingleInstallment(t *testing.T) {
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	installments, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(777), 1, start)
	require.NoError(t, err)
	require.Len(t, installments, 1)
	assert.True(t, installments[0].Amount.Amount().Equal(decimal.NewFromInt(777)))
	assert.Equal(t, start, installments[0].DueDate)
}

func TestSplitIntoInstallments_CountOutOfRange(t *testing.T) {
	start := time.Now()
	total := valueobject.NewMoneyINRFromInt(1000)

	_, err := SplitIntoInstallments(total, 0, start)
	assertDomainCode(t, err, "INVALID_INSTALLMENT_COUNT")

	_, err = SplitIntoInstallments(total, 37, start)
	assertDomainCode(t, err, "INVALID_INSTALLMENT_COUNT")

	_, err = SplitIntoInstallments(total, -3, start)
	assertDomainCode(t, err, "INVALID_INSTALLMENT_COUNT")
}

func TestSplitIntoInstallments_RejectsZeroAmountInstallments(t *testing.T) {
	start := time.Now()

	// 10 across 36 months would floor every installment to zero
	_, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(10), 36, start)
	assertDomainCode(t, err, "INVALID_INSTALLMENT_COUNT")

	// a zero total cannot be scheduled at all
	_, err = SplitIntoInstallments(valueobject.ZeroINR(), 1, start)
	assertDomainCode(t, err, "INVALID_INSTALLMENT_COUNT")

	// the smallest count that keeps every installment positive still works
	installments, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(10), 10, start)
	require.NoError(t, err)
	for _, inst := range installments {
		assert.True(t, inst.Amount.IsPositive())
	}
}

func TestSplitIntoInstallments_MonthlyDueDates(t *testing.T) {
	start := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)

	installments, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(3000), 3, start)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
	assert.Equal(t, time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
}

func TestSplitIntoInstallments_EndOfMonthClamping(t *testing.T) {
	// Each due date derives from the start date, so Feb clamps to the 28th
	// while March recovers the 31st.
	start := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	installments, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(4000), 4, start)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
	assert.Equal(t, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC), installments[3].DueDate)
}

func TestSplitIntoInstallments_LeapYearFebruary(t *testing.T) {
	start := time.Date(2028, time.January, 31, 0, 0, 0, 0, time.UTC)

	installments, err := SplitIntoInstallments(valueobject.NewMoneyINRFromInt(2000), 2, start)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
}

func TestAddMonths_YearRollover(t *testing.T) {
	start := time.Date(2026, time.November, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC), addMonths(start, 2))
}
