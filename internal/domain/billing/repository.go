package billing

import (
	"context"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceRepository manages invoice persistence
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]Invoice, error)
	FindAllScoped(ctx context.Context, scope func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]Invoice, int64, error)
	// FindByLoadIDs reverse-looks-up invoices referencing any of the given
	// loads, matching either a single-load reference or membership in the
	// invoice's load id set.
	FindByLoadIDs(ctx context.Context, companyID uuid.UUID, loadIDs []uuid.UUID) ([]Invoice, error)
	// CreateForGroup persists the invoice and advances its loads to INVOICED
	// in one transaction. The (customer, MC number) grouping key of every
	// load is re-verified inside the transaction; a mismatch aborts only
	// this group with a CONFLICT error.
	CreateForGroup(ctx context.Context, invoice *Invoice) error
	ExistsByInvoiceNumber(ctx context.Context, companyID uuid.UUID, invoiceNumber string) (bool, error)
	Save(ctx context.Context, invoice *Invoice) error
}

// InvoiceBatchRepository manages batch persistence
type InvoiceBatchRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*InvoiceBatch, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]InvoiceBatch, int64, error)
	// BatchedInvoiceIDs returns the subset of the given invoice ids that
	// already belong to any batch.
	BatchedInvoiceIDs(ctx context.Context, invoiceIDs []uuid.UUID) ([]uuid.UUID, error)
	// Create persists the batch together with all of its items atomically.
	Create(ctx context.Context, batch *InvoiceBatch) error
	ExistsByBatchNumber(ctx context.Context, companyID uuid.UUID, batchNumber string) (bool, error)
}

// BillingHoldRepository manages billing hold persistence
type BillingHoldRepository interface {
	FindActiveByLoadID(ctx context.Context, loadID uuid.UUID) (*BillingHold, error)
	ActiveHoldsByLoadIDs(ctx context.Context, loadIDs []uuid.UUID) (map[uuid.UUID]BillingHold, error)
	Save(ctx context.Context, hold *BillingHold) error
}

// CustomerRepository provides the billing view of customers
type CustomerRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Customer, error)
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]Customer, error)
	Save(ctx context.Context, customer *Customer) error
}

// PODChecker reports whether a proof-of-delivery document exists for a load.
// Document storage itself is an external collaborator.
type PODChecker interface {
	HasPOD(ctx context.Context, loadID uuid.UUID) (bool, error)
}
