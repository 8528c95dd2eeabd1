package billing

import (
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusSent    InvoiceStatus = "SENT"
	InvoiceStatusPartial InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusVoid    InvoiceStatus = "VOID"
)

// IsValid checks if the status is a known InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusSent, InvoiceStatusPartial,
		InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// Invoice is a billing document generated from one or more eligible loads
// sharing a customer and MC number. Loads for different customers or
// different MC numbers never share an invoice.
//
// The MC number is stored by relational id; the display string is
// denormalized only at read time.
type Invoice struct {
	shared.CompanyAggregateRoot
	InvoiceNumber string
	CustomerID    uuid.UUID
	McNumberID    uuid.UUID
	LoadIDs       []uuid.UUID
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	Status        InvoiceStatus
	InvoiceDate   time.Time
	DueDate       time.Time
}

// NewInvoice creates an invoice for a (customer, MC number) load group
func NewInvoice(companyID uuid.UUID, invoiceNumber string, customerID, mcNumberID uuid.UUID, loadIDs []uuid.UUID, total decimal.Decimal, dueDate time.Time) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if mcNumberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MC_NUMBER", "MC number ID cannot be empty")
	}
	if len(loadIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_LOADS", "Invoice must reference at least one load")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Invoice total cannot be negative")
	}

	return &Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		InvoiceNumber:        invoiceNumber,
		CustomerID:           customerID,
		McNumberID:           mcNumberID,
		LoadIDs:              loadIDs,
		Total:                total,
		AmountPaid:           decimal.Zero,
		Status:               InvoiceStatusPending,
		InvoiceDate:          time.Now(),
		DueDate:              dueDate,
	}, nil
}

// Balance returns the unpaid remainder
func (i *Invoice) Balance() decimal.Decimal {
	return i.Total.Sub(i.AmountPaid)
}

// References reports whether the invoice covers the given load
func (i *Invoice) References(loadID uuid.UUID) bool {
	for _, id := range i.LoadIDs {
		if id == loadID {
			return true
		}
	}
	return false
}

// RecordPayment applies a payment toward the invoice balance
func (i *Invoice) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if i.Status == InvoiceStatusVoid {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a void invoice")
	}
	if amount.GreaterThan(i.Balance()) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment exceeds outstanding balance")
	}

	i.AmountPaid = i.AmountPaid.Add(amount)
	if i.Balance().IsZero() {
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusPartial
	}
	i.UpdatedAt = time.Now()
	return nil
}
