package identity

import (
	"context"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
)

// McNumberRepository manages MC number persistence
type McNumberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*McNumber, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*McNumber, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]McNumber, error)
	// FindByIDs resolves a set of MC number ids to records, skipping unknown ids.
	// Used by the scope resolver to translate ids to display numbers for
	// legacy invoice rows that store the human-readable string.
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]McNumber, error)
	FindDefaultForCompany(ctx context.Context, companyID uuid.UUID) (*McNumber, error)
	Save(ctx context.Context, mc *McNumber) error
	// SetDefault atomically clears the previous default and flags the given
	// MC number, keeping the one-default-per-company invariant.
	SetDefault(ctx context.Context, companyID, id uuid.UUID) error
	CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}
