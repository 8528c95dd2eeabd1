package models

import (
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
)

// McNumberModel is the persistence model for the McNumber aggregate root.
// MC numbers are soft-deleted; DeletedAt is a plain nullable timestamp so
// reads can opt in to including deleted rows for historical resolution.
type McNumberModel struct {
	CompanyAggregateModel
	Number      string                `gorm:"type:varchar(20);not null;uniqueIndex:idx_mc_company_number,priority:2"`
	CompanyName string                `gorm:"type:varchar(200);not null"`
	Type        identity.McNumberType `gorm:"type:varchar(20);not null;default:'CARRIER'"`
	IsDefault   bool                  `gorm:"not null;default:false;index"`
	DeletedAt   *time.Time            `gorm:"index"`
}

// TableName returns the table name for GORM
func (McNumberModel) TableName() string {
	return "mc_numbers"
}

// ToDomain converts the persistence model to a domain McNumber entity.
func (m *McNumberModel) ToDomain() *identity.McNumber {
	return &identity.McNumber{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Number:               m.Number,
		CompanyName:          m.CompanyName,
		Type:                 m.Type,
		IsDefault:            m.IsDefault,
		DeletedAt:            m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain McNumber entity.
func (m *McNumberModel) FromDomain(mc *identity.McNumber) {
	m.FromDomainCompanyAggregateRoot(mc.CompanyAggregateRoot)
	m.Number = mc.Number
	m.CompanyName = mc.CompanyName
	m.Type = mc.Type
	m.IsDefault = mc.IsDefault
	m.DeletedAt = mc.DeletedAt
}

// McNumberModelFromDomain creates a new persistence model from a domain McNumber.
func McNumberModelFromDomain(mc *identity.McNumber) *McNumberModel {
	m := &McNumberModel{}
	m.FromDomain(mc)
	return m
}
