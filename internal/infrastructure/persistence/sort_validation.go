package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"sale_number": true,
	"client_name": true,
	"plot_number": true,
	"total_price": true,
	"paid_amount": true,
	"status":      true,
	"sale_date":   true,
}

// CancellationSortFields contains allowed sort fields for cancellations
var CancellationSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"cancellation_number": true,
	"sale_number":         true,
	"client_name":         true,
	"total_paid":          true,
	"refundable_amount":   true,
	"refunded_amount":     true,
	"status":              true,
	"decided_at":          true,
}

// RefundSortFields contains allowed sort fields for refund installments
var RefundSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"refund_number":      true,
	"installment_number": true,
	"amount":             true,
	"due_date":           true,
	"approval_status":    true,
	"payment_status":     true,
	"submitted_at":       true,
	"paid_date":          true,
}

// ReceiptSortFields contains allowed sort fields for receipts
var ReceiptSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"receipt_number":  true,
	"client_name":     true,
	"amount":          true,
	"receipt_date":    true,
	"approval_status": true,
	"submitted_at":    true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"expense_number":  true,
	"category":        true,
	"paid_to":         true,
	"amount":          true,
	"expense_date":    true,
	"approval_status": true,
	"submitted_at":    true,
}
