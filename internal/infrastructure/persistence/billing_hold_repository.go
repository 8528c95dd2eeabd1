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

// GormBillingHoldRepository implements BillingHoldRepository using GORM
type GormBillingHoldRepository struct {
	db *gorm.DB
}

// NewGormBillingHoldRepository creates a new GormBillingHoldRepository
func NewGormBillingHoldRepository(db *gorm.DB) *GormBillingHoldRepository {
	return &GormBillingHoldRepository{db: db}
}

// FindActiveByLoadID finds the unreleased hold on a load, if any
func (r *GormBillingHoldRepository) FindActiveByLoadID(ctx context.Context, loadID uuid.UUID) (*billing.BillingHold, error) {
	var model models.BillingHoldModel
	if err := r.db.WithContext(ctx).
		Where("load_id = ? AND released_at IS NULL", loadID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ActiveHoldsByLoadIDs maps each held load id to its active hold. Loads
// without an active hold are absent from the map.
func (r *GormBillingHoldRepository) ActiveHoldsByLoadIDs(ctx context.Context, loadIDs []uuid.UUID) (map[uuid.UUID]billing.BillingHold, error) {
	if len(loadIDs) == 0 {
		return map[uuid.UUID]billing.BillingHold{}, nil
	}
	var holdModels []models.BillingHoldModel
	if err := r.db.WithContext(ctx).
		Where("load_id IN ? AND released_at IS NULL", loadIDs).
		Order("created_at ASC").
		Find(&holdModels).Error; err != nil {
		return nil, err
	}
	holds := make(map[uuid.UUID]billing.BillingHold, len(holdModels))
	for _, model := range holdModels {
		holds[model.LoadID] = *model.ToDomain()
	}
	return holds, nil
}

// Save persists a billing hold
func (r *GormBillingHoldRepository) Save(ctx context.Context, hold *billing.BillingHold) error {
	model := models.BillingHoldModelFromDomain(hold)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure interface compliance
var _ billing.BillingHoldRepository = (*GormBillingHoldRepository)(nil)
