package billing

import (
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceBatch is a settlement bundle grouping invoices for downstream
// processing, such as a factoring submission. The batch and its items are
// written as a single atomic unit: a reader never observes a batch without
// its full item set.
type InvoiceBatch struct {
	shared.CompanyAggregateRoot
	BatchNumber string
	McNumberID  *uuid.UUID
	TotalAmount decimal.Decimal
	Notes       string
	Items       []InvoiceBatchItem
}

// InvoiceBatchItem binds one invoice to exactly one batch. An invoice
// appears in at most one item row ever; re-batching is rejected upstream
// and a uniqueness constraint on invoice_id backs the invariant.
type InvoiceBatchItem struct {
	shared.BaseEntity
	BatchID   uuid.UUID
	InvoiceID uuid.UUID
}

// NewInvoiceBatch assembles a batch over the given invoices. The total is
// computed here from the member invoices so it can never drift from the
// item set at creation time.
func NewInvoiceBatch(companyID, createdBy uuid.UUID, batchNumber string, invoices []Invoice, mcNumberID *uuid.UUID, notes string) (*InvoiceBatch, error) {
	if batchNumber == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot be empty")
	}
	if len(invoices) == 0 {
		return nil, shared.ErrNoInvoices
	}

	batch := &InvoiceBatch{
		CompanyAggregateRoot: shared.NewCompanyAggregateRootWithCreator(companyID, createdBy),
		BatchNumber:          batchNumber,
		McNumberID:           mcNumberID,
		Notes:                notes,
		TotalAmount:          decimal.Zero,
	}

	seen := make(map[uuid.UUID]bool, len(invoices))
	for _, inv := range invoices {
		if seen[inv.ID] {
			continue
		}
		seen[inv.ID] = true
		batch.Items = append(batch.Items, InvoiceBatchItem{
			BaseEntity: shared.NewBaseEntity(),
			BatchID:    batch.ID,
			InvoiceID:  inv.ID,
		})
		batch.TotalAmount = batch.TotalAmount.Add(inv.Total)
	}

	// Default the batch MC to the first invoice's when no override was given
	if batch.McNumberID == nil && invoices[0].McNumberID != uuid.Nil {
		mc := invoices[0].McNumberID
		batch.McNumberID = &mc
	}

	return batch, nil
}

// InvoiceCount returns the number of member invoices
func (b *InvoiceBatch) InvoiceCount() int {
	return len(b.Items)
}

// SetNotes updates the free-form notes
func (b *InvoiceBatch) SetNotes(notes string) {
	b.Notes = notes
	b.UpdatedAt = time.Now()
}
