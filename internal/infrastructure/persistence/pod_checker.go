package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/models"
)

// GormPODChecker answers proof-of-delivery presence checks from the
// pod_documents table
type GormPODChecker struct {
	db *gorm.DB
}

// NewGormPODChecker creates a new GormPODChecker
func NewGormPODChecker(db *gorm.DB) *GormPODChecker {
	return &GormPODChecker{db: db}
}

// HasPOD reports whether at least one POD document exists for the load
func (c *GormPODChecker) HasPOD(ctx context.Context, loadID uuid.UUID) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.PODDocumentModel{}).
		Where("load_id = ?", loadID).
		Count(&count).Error
	return count > 0, err
}

// Ensure interface compliance
var _ billing.PODChecker = (*GormPODChecker)(nil)
