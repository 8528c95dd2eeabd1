package identity

import (
	"strings"
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
)

// McNumberType distinguishes carrier authority from brokerage authority
type McNumberType string

const (
	McTypeCarrier McNumberType = "CARRIER"
	McTypeBroker  McNumberType = "BROKER"
)

// IsValid checks if the type is a known McNumberType
func (t McNumberType) IsValid() bool {
	return t == McTypeCarrier || t == McTypeBroker
}

// McNumber is a carrier/broker sub-identity under a tenant company.
// It is the primary multi-tenant scoping unit below the company itself:
// every load carries an MC number id and every financial query is gated
// by the caller's MC grant set.
//
// MC numbers are soft-deleted only, so historical loads and invoices keep
// a resolvable reference.
type McNumber struct {
	shared.CompanyAggregateRoot
	Number      string
	CompanyName string
	Type        McNumberType
	IsDefault   bool
	DeletedAt   *time.Time
}

// NewMcNumber creates a new MC number for a company
func NewMcNumber(companyID uuid.UUID, number, companyName string, mcType McNumberType) (*McNumber, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_MC_NUMBER", "MC number cannot be empty")
	}
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Operating company name cannot be empty")
	}
	if !mcType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MC_TYPE", "MC number type must be CARRIER or BROKER")
	}

	return &McNumber{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		CompanyName:          companyName,
		Type:                 mcType,
	}, nil
}

// IsDeleted reports whether the MC number has been soft-deleted
func (m *McNumber) IsDeleted() bool {
	return m.DeletedAt != nil
}

// MarkDefault flags this MC number as the company default.
// The repository enforces that at most one default exists per company.
func (m *McNumber) MarkDefault() {
	m.IsDefault = true
	m.UpdatedAt = time.Now()
}

// ClearDefault removes the default flag
func (m *McNumber) ClearDefault() {
	m.IsDefault = false
	m.UpdatedAt = time.Now()
}

// Rename updates the operating company name shown on invoices
func (m *McNumber) Rename(companyName string) error {
	if companyName == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Operating company name cannot be empty")
	}
	m.CompanyName = companyName
	m.UpdatedAt = time.Now()
	return nil
}

// SoftDelete marks the MC number deleted while preserving referential history
func (m *McNumber) SoftDelete() error {
	if m.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "MC number is already deleted")
	}
	now := time.Now()
	m.DeletedAt = &now
	m.IsDefault = false
	m.UpdatedAt = now
	return nil
}
