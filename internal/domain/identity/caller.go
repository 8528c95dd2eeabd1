package identity

import (
	"slices"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a user's role within a company
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleDispatcher Role = "DISPATCHER"
	RoleAccounting Role = "ACCOUNTING"
	RoleDriver     Role = "DRIVER"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleDispatcher, RoleAccounting, RoleDriver:
		return true
	}
	return false
}

// ParseRole converts a raw string to a Role, rejecting unknown values
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.IsValid() {
		return "", shared.NewDomainError("UNAUTHORIZED", "Unknown role: "+raw)
	}
	return r, nil
}

// Elevated reports whether the role carries unrestricted MC scope
// within its company. Elevated callers bypass the MC grant set.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CallerContext carries the resolved identity of the caller through every
// pipeline call. It is built once from the authenticated session and passed
// explicitly; pipeline code never reads ambient global state.
type CallerContext struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      Role
	// McAccess is the explicit grant set of MC number ids the caller may
	// act on. Ignored for elevated roles; an empty set for a non-elevated
	// caller means no access at all.
	McAccess []uuid.UUID
}

// Elevated reports whether this caller has unrestricted MC scope
func (c CallerContext) Elevated() bool {
	return c.Role.Elevated()
}

// CanAccessMc checks whether the caller may act on the given MC number id
func (c CallerContext) CanAccessMc(mcNumberID uuid.UUID) bool {
	if c.Elevated() {
		return true
	}
	return slices.Contains(c.McAccess, mcNumberID)
}

// Capability names an operation gated by role
type Capability string

const (
	CapManageMcNumbers Capability = "mc_numbers:manage"
	CapCreateBatch     Capability = "batches:create"
	CapManageHolds     Capability = "billing_holds:manage"
	CapWriteLoadStatus Capability = "loads:write_status"
	CapViewFinancials  Capability = "financials:view"
)

// capabilityRoles is the single source of truth for role capability checks.
// Every entry point into the billing pipeline consults this table through
// Allow; per-route ad hoc role checks are not permitted.
var capabilityRoles = map[Capability][]Role{
	CapManageMcNumbers: {RoleSuperAdmin, RoleAdmin},
	CapCreateBatch:     {RoleSuperAdmin, RoleAdmin, RoleAccounting},
	CapManageHolds:     {RoleSuperAdmin, RoleAdmin, RoleAccounting},
	CapWriteLoadStatus: {RoleSuperAdmin, RoleAdmin, RoleDispatcher},
	CapViewFinancials:  {RoleSuperAdmin, RoleAdmin, RoleAccounting},
}

// Allow checks whether the caller's role grants the capability.
// Returns nil on success or a typed FORBIDDEN error naming the capability.
func Allow(caller CallerContext, cap Capability) error {
	roles, ok := capabilityRoles[cap]
	if !ok {
		return shared.NewDomainError("FORBIDDEN", "Unknown capability: "+string(cap))
	}
	if slices.Contains(roles, caller.Role) {
		return nil
	}
	return shared.NewDomainError("FORBIDDEN", "Role "+string(caller.Role)+" may not perform "+string(cap))
}
