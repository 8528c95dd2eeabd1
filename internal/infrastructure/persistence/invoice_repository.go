package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDs finds invoices by id for a company
func (r *GormInvoiceRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]billing.Invoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels)
}

// FindAllScoped lists invoices under the scope predicate with pagination
func (r *GormInvoiceRepository) FindAllScoped(ctx context.Context, scope func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]billing.Invoice, int64, error) {
	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	base := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Scopes(scope)
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		base = base.Where("customer_id = ?", customerID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoiceModels []models.InvoiceModel
	query := base.Order(orderBy + " " + orderDir)
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	invoices, err := toDomainInvoices(invoiceModels)
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// FindByLoadIDs reverse-looks-up invoices referencing any of the given
// loads. The load_ids text[] overlap operator makes this a single query.
func (r *GormInvoiceRepository) FindByLoadIDs(ctx context.Context, companyID uuid.UUID, loadIDs []uuid.UUID) ([]billing.Invoice, error) {
	if len(loadIDs) == 0 {
		return nil, nil
	}
	raw := make([]string, len(loadIDs))
	for i, id := range loadIDs {
		raw[i] = id.String()
	}

	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND load_ids && ?", companyID, pq.StringArray(raw)).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels)
}

// CreateForGroup persists the invoice and advances its loads to INVOICED in
// one transaction. Eligibility was computed outside this transaction, so the
// (customer, MC number) grouping key of every load is re-verified here: a
// load reassigned or invoiced in the window fails the whole group rather
// than landing on the wrong invoice.
func (r *GormInvoiceRepository) CreateForGroup(ctx context.Context, invoice *billing.Invoice) error {
	billableStatuses := []fleet.LoadStatus{fleet.LoadStatusDelivered, fleet.LoadStatusReadyToBill}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loadModels []models.LoadModel
		if err := tx.
			Where("company_id = ? AND id IN ?", invoice.CompanyID, invoice.LoadIDs).
			Find(&loadModels).Error; err != nil {
			return err
		}
		if len(loadModels) != len(invoice.LoadIDs) {
			return shared.ErrConcurrencyConflict
		}
		for _, lm := range loadModels {
			if lm.CustomerID != invoice.CustomerID || lm.McNumberID != invoice.McNumberID {
				return shared.ErrConcurrencyConflict
			}
			if lm.Status != fleet.LoadStatusDelivered && lm.Status != fleet.LoadStatusReadyToBill {
				return shared.ErrConcurrencyConflict
			}
		}

		if err := tx.Create(models.InvoiceModelFromDomain(invoice)).Error; err != nil {
			return err
		}

		// The WHERE clause repeats the grouping key and billable statuses so
		// a row changed between the read above and this update drops out of
		// RowsAffected instead of being silently invoiced.
		result := tx.Model(&models.LoadModel{}).
			Where("company_id = ? AND id IN ? AND customer_id = ? AND mc_number_id = ? AND status IN ?",
				invoice.CompanyID, invoice.LoadIDs, invoice.CustomerID, invoice.McNumberID, billableStatuses).
			Updates(map[string]interface{}{
				"status":     fleet.LoadStatusInvoiced,
				"updated_at": time.Now(),
				"version":    gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(invoice.LoadIDs)) {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

func toDomainInvoices(invoiceModels []models.InvoiceModel) ([]billing.Invoice, error) {
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		inv, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		invoices[i] = *inv
	}
	return invoices, nil
}

// ExistsByInvoiceNumber checks for an invoice number collision within a company
func (r *GormInvoiceRepository) ExistsByInvoiceNumber(ctx context.Context, companyID uuid.UUID, invoiceNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("company_id = ? AND invoice_number = ?", companyID, invoiceNumber).
		Count(&count).Error
	return count > 0, err
}

// Save persists an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure interface compliance
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
