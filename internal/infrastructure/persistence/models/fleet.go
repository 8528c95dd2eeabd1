package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
)

// LoadModel is the persistence model for the Load aggregate root.
// mc_number_id is non-null: every load is assigned to an MC number when it
// is created, so the MC scope predicate never has to special-case orphans.
type LoadModel struct {
	CompanyAggregateModel
	LoadNumber   string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_load_company_number,priority:2"`
	McNumberID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	DriverID     *uuid.UUID       `gorm:"type:uuid;index"`
	Status       fleet.LoadStatus `gorm:"type:varchar(30);not null;default:'PENDING';index"`
	Revenue      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	DriverPay    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	FuelAdvance  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	ServiceFee   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	TotalMiles   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Weight       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PickupDate   *time.Time       `gorm:"index"`
	DeliveryDate *time.Time       `gorm:"index"`
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string     `gorm:"type:varchar(500)"`
	DeletedAt    *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (LoadModel) TableName() string {
	return "loads"
}

// ToDomain converts the persistence model to a domain Load entity.
func (m *LoadModel) ToDomain() *fleet.Load {
	return &fleet.Load{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		LoadNumber:           m.LoadNumber,
		McNumberID:           m.McNumberID,
		CustomerID:           m.CustomerID,
		DriverID:             m.DriverID,
		Status:               m.Status,
		Revenue:              m.Revenue,
		DriverPay:            m.DriverPay,
		FuelAdvance:          m.FuelAdvance,
		ServiceFee:           m.ServiceFee,
		TotalMiles:           m.TotalMiles,
		Weight:               m.Weight,
		PickupDate:           m.PickupDate,
		DeliveryDate:         m.DeliveryDate,
		DeliveredAt:          m.DeliveredAt,
		CancelledAt:          m.CancelledAt,
		CancelReason:         m.CancelReason,
		DeletedAt:            m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Load entity.
func (m *LoadModel) FromDomain(l *fleet.Load) {
	m.FromDomainCompanyAggregateRoot(l.CompanyAggregateRoot)
	m.LoadNumber = l.LoadNumber
	m.McNumberID = l.McNumberID
	m.CustomerID = l.CustomerID
	m.DriverID = l.DriverID
	m.Status = l.Status
	m.Revenue = l.Revenue
	m.DriverPay = l.DriverPay
	m.FuelAdvance = l.FuelAdvance
	m.ServiceFee = l.ServiceFee
	m.TotalMiles = l.TotalMiles
	m.Weight = l.Weight
	m.PickupDate = l.PickupDate
	m.DeliveryDate = l.DeliveryDate
	m.DeliveredAt = l.DeliveredAt
	m.CancelledAt = l.CancelledAt
	m.CancelReason = l.CancelReason
	m.DeletedAt = l.DeletedAt
}

// LoadModelFromDomain creates a new persistence model from a domain Load.
func LoadModelFromDomain(l *fleet.Load) *LoadModel {
	m := &LoadModel{}
	m.FromDomain(l)
	return m
}

// PODDocumentModel records a proof-of-delivery document reference for a
// load. The file itself lives in external storage; billing only needs to
// know that at least one POD row exists.
type PODDocumentModel struct {
	BaseModel
	LoadID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName   string    `gorm:"type:varchar(255);not null"`
	StorageKey string    `gorm:"type:varchar(500);not null"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (PODDocumentModel) TableName() string {
	return "pod_documents"
}
