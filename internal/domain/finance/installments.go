package finance

import (
	"time"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const (
	// MinInstallments and MaxInstallments bound the refund schedule size.
	MinInstallments = 1
	MaxInstallments = 36
)

// Installment is one slice of a refund schedule.
type Installment struct {
	Sequence int
	Amount   valueobject.Money
	DueDate  time.Time
}

// ComputeOfficeCharge calculates the deduction retained by the office when a
// sale is cancelled, as a percentage of the amount the client already paid.
// The result is rounded half-up to whole currency units.
func ComputeOfficeCharge(paidAmount valueobject.Money, percent decimal.Decimal) (valueobject.Money, error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return valueobject.Money{}, shared.NewDomainError("INVALID_DEDUCTION", "Office charge percent must be between 0 and 100")
	}
	return paidAmount.Percent(percent), nil
}

// ComputeRefundable calculates the amount owed back to the client: the total
// already paid minus the office charge and any other deductions. A negative
// result is reported, never clamped.
func ComputeRefundable(paidAmount, officeCharge, otherDeductions valueobject.Money) (valueobject.Money, error) {
	if officeCharge.IsNegative() || otherDeductions.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_DEDUCTION", "Deductions cannot be negative")
	}
	afterCharge, err := paidAmount.Sub(officeCharge)
	if err != nil {
		return valueobject.Money{}, err
	}
	refundable, err := afterCharge.Sub(otherDeductions)
	if err != nil {
		return valueobject.Money{}, err
	}
	if refundable.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_DEDUCTION", "Deductions exceed the paid amount")
	}
	return refundable, nil
}

// SplitIntoInstallments divides a refundable amount into count equal
// installments due on consecutive calendar months starting at startDate.
// Amounts are split evenly with any remainder carried by the last
// installment, so the sum of all installments always equals the total.
func SplitIntoInstallments(total valueobject.Money, count int, startDate time.Time) ([]Installment, error) {
	if count < MinInstallments || count > MaxInstallments {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_COUNT", "Installment count must be between 1 and 36")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEDUCTION", "Cannot schedule a negative refund")
	}

	n := decimal.NewFromInt(int64(count))
	base := total.Amount().Div(n).Floor()
	// every installment must carry a positive amount; a zero base means the
	// total is too small to spread across this many installments
	if base.IsZero() {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_COUNT", "Installment count is too large for the refundable amount")
	}
	last := total.Amount().Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	installments := make([]Installment, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = last
		}
		money, err := valueobject.NewMoney(amount, total.Currency())
		if err != nil {
			return nil, err
		}
		installments[i] = Installment{
			Sequence: i + 1,
			Amount:   money,
			DueDate:  addMonths(startDate, i),
		}
	}
	return installments, nil
}

// addMonths advances a date by whole calendar months, clamping to the last
// day of the target month when the source day does not exist there
// (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if lastDay := daysInMonth(target.Year(), target.Month()); day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
