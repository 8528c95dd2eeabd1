package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/models"
)

// GormLoadRepository implements LoadRepository using GORM
type GormLoadRepository struct {
	db *gorm.DB
}

// NewGormLoadRepository creates a new GormLoadRepository
func NewGormLoadRepository(db *gorm.DB) *GormLoadRepository {
	return &GormLoadRepository{db: db}
}

// FindByID finds a load by its ID
func (r *GormLoadRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Load, error) {
	var model models.LoadModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a load by ID for a specific company
func (r *GormLoadRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*fleet.Load, error) {
	var model models.LoadModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ? AND deleted_at IS NULL", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsScoped returns the subset of the given loads visible under the
// scope predicate, preserving the caller's input order. Loads filtered out
// by the scope are simply absent from the result; the caller decides
// whether that is an error.
func (r *GormLoadRepository) FindByIDsScoped(ctx context.Context, ids []uuid.UUID, scope func(*gorm.DB) *gorm.DB) ([]fleet.Load, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var loadModels []models.LoadModel
	query := r.db.WithContext(ctx).Model(&models.LoadModel{}).
		Scopes(scope).
		Where("id IN ? AND deleted_at IS NULL", ids)
	if err := query.Find(&loadModels).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.LoadModel, len(loadModels))
	for i := range loadModels {
		byID[loadModels[i].ID] = &loadModels[i]
	}

	loads := make([]fleet.Load, 0, len(loadModels))
	for _, id := range ids {
		if model, ok := byID[id]; ok {
			loads = append(loads, *model.ToDomain())
		}
	}
	return loads, nil
}

// FindAllScoped lists loads under the scope predicate with pagination
func (r *GormLoadRepository) FindAllScoped(ctx context.Context, scope func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]fleet.Load, int64, error) {
	orderBy := ValidateSortField(filter.OrderBy, LoadSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	base := r.db.WithContext(ctx).Model(&models.LoadModel{}).
		Scopes(scope).
		Where("deleted_at IS NULL")

	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		base = base.Where("customer_id = ?", customerID)
	}
	if filter.Search != "" {
		base = base.Where("load_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var loadModels []models.LoadModel
	query := base.Order(orderBy + " " + orderDir)
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}
	if err := query.Find(&loadModels).Error; err != nil {
		return nil, 0, err
	}

	loads := make([]fleet.Load, len(loadModels))
	for i, model := range loadModels {
		loads[i] = *model.ToDomain()
	}
	return loads, total, nil
}

// Save persists a load
func (r *GormLoadRepository) Save(ctx context.Context, load *fleet.Load) error {
	model := models.LoadModelFromDomain(load)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStatus persists a status change with optimistic locking on the
// aggregate version
func (r *GormLoadRepository) UpdateStatus(ctx context.Context, load *fleet.Load) error {
	result := r.db.WithContext(ctx).Model(&models.LoadModel{}).
		Where("id = ? AND version = ?", load.ID, load.Version).
		Updates(map[string]interface{}{
			"status":        load.Status,
			"delivered_at":  load.DeliveredAt,
			"cancelled_at":  load.CancelledAt,
			"cancel_reason": load.CancelReason,
			"updated_at":    load.UpdatedAt,
			"version":       load.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	load.IncrementVersion()
	return nil
}

// ExistsByLoadNumber checks for a load number collision within a company
func (r *GormLoadRepository) ExistsByLoadNumber(ctx context.Context, companyID uuid.UUID, loadNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoadModel{}).
		Where("company_id = ? AND load_number = ?", companyID, loadNumber).
		Count(&count).Error
	return count > 0, err
}

// Ensure interface compliance
var _ fleet.LoadRepository = (*GormLoadRepository)(nil)
