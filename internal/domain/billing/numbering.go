package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing/seqnum"
)

// ExistsFunc reports whether a rendered number is already taken in the
// target table for the company.
type ExistsFunc func(ctx context.Context, number string) (bool, error)

// NumberGenerator allocates unique human-facing identifiers such as invoice
// and batch numbers. Implementations own persistence of the sequence counter
// and retry on collision with rows written outside the counter, returning
// ErrNumberExhausted once the retry budget is spent.
type NumberGenerator interface {
	Next(ctx context.Context, companyID uuid.UUID, prefix string, format seqnum.Format, exists ExistsFunc) (string, error)
}
