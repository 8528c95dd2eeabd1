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

// McNumberSortFields contains allowed sort fields for MC numbers
var McNumberSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"number":       true,
	"company_name": true,
	"type":         true,
	"is_default":   true,
}

// LoadSortFields contains allowed sort fields for loads
var LoadSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"load_number":   true,
	"status":        true,
	"customer_id":   true,
	"mc_number_id":  true,
	"revenue":       true,
	"weight":        true,
	"delivery_date": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"type":               true,
	"payment_terms_days": true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"customer_id":    true,
	"mc_number_id":   true,
	"status":         true,
	"total":          true,
	"invoice_date":   true,
	"due_date":       true,
}

// InvoiceBatchSortFields contains allowed sort fields for invoice batches
var InvoiceBatchSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"batch_number": true,
	"mc_number_id": true,
	"total_amount": true,
}

// BillingHoldSortFields contains allowed sort fields for billing holds
var BillingHoldSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"load_id":     true,
	"released_at": true,
}
