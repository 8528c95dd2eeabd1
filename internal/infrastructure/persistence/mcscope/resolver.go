// Package mcscope resolves which MC numbers a caller may query and turns
// the answer into a GORM predicate.
//
// Scoping is two-layered: every query is confined to the caller's company,
// and within the company to a set of MC numbers. Elevated roles (admin and
// above) see every MC number of their company unless they explicitly select
// one; everyone else is confined to their MC grant set. A caller with no
// usable scope gets an always-false predicate, never an unfiltered query.
//
// Usage:
//
//	scope, err := mcscope.Resolve(caller, selectedMc)
//	db.Scopes(scope.ApplyToQuery()).Find(&loads) // WHERE company_id = ? AND mc_number_id IN ?
package mcscope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

// Scope is the resolved MC visibility of one request
type Scope struct {
	CompanyID uuid.UUID
	// McNumberIDs is the set of visible MC number ids. nil means every MC
	// number of the company; an empty non-nil set means no access at all.
	McNumberIDs []uuid.UUID
}

// Resolve computes the caller's MC scope, optionally narrowed to a single
// explicitly selected MC number.
//
// An explicit selection outside a non-elevated caller's grant set is a
// FORBIDDEN error, not an empty result: the caller asked for something it
// was told exists but may not touch.
func Resolve(caller identity.CallerContext, selected *uuid.UUID) (Scope, error) {
	if caller.CompanyID == uuid.Nil {
		return Scope{}, shared.ErrUnauthorized
	}

	scope := Scope{CompanyID: caller.CompanyID}

	if caller.Elevated() {
		if selected != nil && *selected != uuid.Nil {
			scope.McNumberIDs = []uuid.UUID{*selected}
		}
		return scope, nil
	}

	if selected != nil && *selected != uuid.Nil {
		if !caller.CanAccessMc(*selected) {
			return Scope{}, shared.NewDomainError("FORBIDDEN", "Selected MC number is outside your access grants")
		}
		scope.McNumberIDs = []uuid.UUID{*selected}
		return scope, nil
	}

	// No selection: the grant set is the scope. An empty grant set resolves
	// to an empty (fail-closed) scope rather than an error so list views
	// render empty instead of erroring.
	scope.McNumberIDs = make([]uuid.UUID, len(caller.McAccess))
	copy(scope.McNumberIDs, caller.McAccess)
	return scope, nil
}

// Unrestricted reports whether the scope spans the whole company
func (s Scope) Unrestricted() bool {
	return s.McNumberIDs == nil
}

// Empty reports whether the scope excludes everything
func (s Scope) Empty() bool {
	return s.McNumberIDs != nil && len(s.McNumberIDs) == 0
}

// AllowsMc checks whether a specific MC number id falls inside the scope
func (s Scope) AllowsMc(id uuid.UUID) bool {
	if s.Unrestricted() {
		return true
	}
	for _, mcID := range s.McNumberIDs {
		if mcID == id {
			return true
		}
	}
	return false
}

// Apply adds the scope predicate to a query over a table with company_id
// and mc_number_id columns
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	if s.CompanyID == uuid.Nil {
		return db.Where("1 = 0")
	}
	db = db.Where("company_id = ?", s.CompanyID)
	if s.Unrestricted() {
		return db
	}
	if s.Empty() {
		return db.Where("1 = 0")
	}
	return db.Where("mc_number_id IN ?", s.McNumberIDs)
}

// ApplyToQuery returns the scope predicate as a GORM scope function
func (s Scope) ApplyToQuery() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return s.Apply(db)
	}
}

// CompanyOnly returns a predicate confined to the company without MC
// filtering, for tables that are company-scoped but not MC-scoped
// (customers, batches).
func (s Scope) CompanyOnly(db *gorm.DB) *gorm.DB {
	if s.CompanyID == uuid.Nil {
		return db.Where("1 = 0")
	}
	return db.Where("company_id = ?", s.CompanyID)
}
