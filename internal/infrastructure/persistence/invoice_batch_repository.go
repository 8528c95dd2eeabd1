package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/models"
)

// GormInvoiceBatchRepository implements InvoiceBatchRepository using GORM
type GormInvoiceBatchRepository struct {
	db *gorm.DB
}

// NewGormInvoiceBatchRepository creates a new GormInvoiceBatchRepository
func NewGormInvoiceBatchRepository(db *gorm.DB) *GormInvoiceBatchRepository {
	return &GormInvoiceBatchRepository{db: db}
}

// FindByID finds a batch with its items for a company
func (r *GormInvoiceBatchRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.InvoiceBatch, error) {
	var model models.InvoiceBatchModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "company_id = ? AND id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists batches for a company with pagination
func (r *GormInvoiceBatchRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.InvoiceBatch, int64, error) {
	orderBy := ValidateSortField(filter.OrderBy, InvoiceBatchSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	base := r.db.WithContext(ctx).Model(&models.InvoiceBatchModel{}).
		Where("company_id = ?", companyID)
	if mcNumberID, ok := filter.Filters["mc_number_id"]; ok {
		base = base.Where("mc_number_id = ?", mcNumberID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var batchModels []models.InvoiceBatchModel
	query := base.Preload("Items").Order(orderBy + " " + orderDir)
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}
	if err := query.Find(&batchModels).Error; err != nil {
		return nil, 0, err
	}

	batches := make([]billing.InvoiceBatch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = *model.ToDomain()
	}
	return batches, total, nil
}

// BatchedInvoiceIDs returns the subset of the given invoice ids that already
// belong to any batch
func (r *GormInvoiceBatchRepository) BatchedInvoiceIDs(ctx context.Context, invoiceIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(invoiceIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.InvoiceBatchItemModel{}).
		Where("invoice_id IN ?", invoiceIDs).
		Pluck("invoice_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Create persists the batch together with all of its items in one
// transaction. The unique index on invoice_batch_items.invoice_id rejects a
// concurrent build that claimed any of the same invoices, failing this batch
// whole instead of leaving it partially filled.
func (r *GormInvoiceBatchRepository) Create(ctx context.Context, batch *billing.InvoiceBatch) error {
	model := models.InvoiceBatchModelFromDomain(batch)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConcurrencyConflict
		}
		return err
	}
	return nil
}

// ExistsByBatchNumber checks for a batch number collision within a company
func (r *GormInvoiceBatchRepository) ExistsByBatchNumber(ctx context.Context, companyID uuid.UUID, batchNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceBatchModel{}).
		Where("company_id = ? AND batch_number = ?", companyID, batchNumber).
		Count(&count).Error
	return count > 0, err
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Ensure interface compliance
var _ billing.InvoiceBatchRepository = (*GormInvoiceBatchRepository)(nil)
