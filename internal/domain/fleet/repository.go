package fleet

import (
	"context"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoadRepository manages load persistence.
//
// Methods accepting scope funcs compose the MC scope predicate with any
// additional filters by conjunction; no filter may replace the scope.
type LoadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Load, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Load, error)
	// FindByIDsScoped returns the subset of the given loads visible under the
	// scope predicate, in input order.
	FindByIDsScoped(ctx context.Context, ids []uuid.UUID, scope func(*gorm.DB) *gorm.DB) ([]Load, error)
	FindAllScoped(ctx context.Context, scope func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]Load, int64, error)
	Save(ctx context.Context, load *Load) error
	// UpdateStatus persists a status change made through the aggregate.
	UpdateStatus(ctx context.Context, load *Load) error
	ExistsByLoadNumber(ctx context.Context, companyID uuid.UUID, loadNumber string) (bool, error)
}
