package finance

// PaymentMethod represents the method of payment
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"          // Cash payment
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER" // Bank transfer / NEFT / RTGS
	PaymentMethodCheque       PaymentMethod = "CHEQUE"        // Cheque
	PaymentMethodUPI          PaymentMethod = "UPI"           // UPI transfer
	PaymentMethodOther        PaymentMethod = "OTHER"         // Other methods
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque,
		PaymentMethodUPI, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}
