package billing

import (
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
)

// BillingHold blocks a load from being invoiced regardless of its lifecycle
// status. Holds are placed and released by accounting; while a hold is
// active the load fails eligibility with the hold's reason.
type BillingHold struct {
	shared.CompanyAggregateRoot
	LoadID     uuid.UUID
	Reason     string
	ReleasedAt *time.Time
}

// NewBillingHold places a hold on a load
func NewBillingHold(companyID, loadID, placedBy uuid.UUID, reason string) (*BillingHold, error) {
	if loadID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOAD", "Load ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Billing hold requires a reason")
	}
	return &BillingHold{
		CompanyAggregateRoot: shared.NewCompanyAggregateRootWithCreator(companyID, placedBy),
		LoadID:               loadID,
		Reason:               reason,
	}, nil
}

// Active reports whether the hold still blocks invoicing
func (h *BillingHold) Active() bool {
	return h.ReleasedAt == nil
}

// Release lifts the hold
func (h *BillingHold) Release() error {
	if !h.Active() {
		return shared.NewDomainError("INVALID_STATE", "Billing hold is already released")
	}
	now := time.Now()
	h.ReleasedAt = &now
	h.UpdatedAt = now
	return nil
}
