package finance

import "context"

// LedgerPoster is the accounting ledger collaborator. Implementations
// append immutable ledger entries; the core only guarantees it is called
// exactly once per document, when the document first enters APPROVED.
type LedgerPoster interface {
	// PostReceipt records an approved receipt as money in
	PostReceipt(ctx context.Context, receipt *Receipt) error

	// PostExpense records an approved expense as money out
	PostExpense(ctx context.Context, expense *Expense) error

	// PostRefund records a paid refund installment as money out
	PostRefund(ctx context.Context, refund *Refund) error
}
