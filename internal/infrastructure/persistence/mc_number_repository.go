package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/models"
)

// GormMcNumberRepository implements McNumberRepository using GORM
type GormMcNumberRepository struct {
	db *gorm.DB
}

// NewGormMcNumberRepository creates a new GormMcNumberRepository
func NewGormMcNumberRepository(db *gorm.DB) *GormMcNumberRepository {
	return &GormMcNumberRepository{db: db}
}

// FindByID finds an MC number by its ID, including soft-deleted rows so
// historical invoices can still resolve their MC reference
func (r *GormMcNumberRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.McNumber, error) {
	var model models.McNumberModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a live MC number by ID for a specific company
func (r *GormMcNumberRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*identity.McNumber, error) {
	var model models.McNumberModel
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

// FindAllForCompany lists the live MC numbers of a company
func (r *GormMcNumberRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]identity.McNumber, error) {
	orderBy := ValidateSortField(filter.OrderBy, McNumberSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var mcModels []models.McNumberModel
	query := r.db.WithContext(ctx).Model(&models.McNumberModel{}).
		Where("company_id = ? AND deleted_at IS NULL", companyID).
		Order(orderBy + " " + orderDir)
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}

	if err := query.Find(&mcModels).Error; err != nil {
		return nil, err
	}
	mcs := make([]identity.McNumber, len(mcModels))
	for i, model := range mcModels {
		mcs[i] = *model.ToDomain()
	}
	return mcs, nil
}

// FindByIDs resolves a set of MC number ids, skipping unknown ids.
// Soft-deleted rows are included: resolution exists precisely so that
// historical references stay readable.
func (r *GormMcNumberRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]identity.McNumber, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var mcModels []models.McNumberModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&mcModels).Error; err != nil {
		return nil, err
	}
	mcs := make([]identity.McNumber, len(mcModels))
	for i, model := range mcModels {
		mcs[i] = *model.ToDomain()
	}
	return mcs, nil
}

// FindDefaultForCompany returns the company's default MC number
func (r *GormMcNumberRepository) FindDefaultForCompany(ctx context.Context, companyID uuid.UUID) (*identity.McNumber, error) {
	var model models.McNumberModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_default = ? AND deleted_at IS NULL", companyID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists an MC number
func (r *GormMcNumberRepository) Save(ctx context.Context, mc *identity.McNumber) error {
	model := models.McNumberModelFromDomain(mc)
	return r.db.WithContext(ctx).Save(model).Error
}

// SetDefault atomically clears the previous default and flags the given MC
// number. Both updates run in one transaction so the one-default-per-company
// invariant holds under concurrent calls.
func (r *GormMcNumberRepository) SetDefault(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.McNumberModel{}).
			Where("company_id = ? AND is_default = ?", companyID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.McNumberModel{}).
			Where("company_id = ? AND id = ? AND deleted_at IS NULL", companyID, id).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountForCompany counts the live MC numbers of a company
func (r *GormMcNumberRepository) CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.McNumberModel{}).
		Where("company_id = ? AND deleted_at IS NULL", companyID).
		Count(&count).Error
	return count, err
}

// Ensure interface compliance
var _ identity.McNumberRepository = (*GormMcNumberRepository)(nil)
