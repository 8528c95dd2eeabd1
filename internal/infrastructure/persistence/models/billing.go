package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

// CustomerModel is the billing persistence view of a customer.
type CustomerModel struct {
	CompanyAggregateModel
	Name         string               `gorm:"type:varchar(200);not null;index"`
	Type         billing.CustomerType `gorm:"type:varchar(20);not null;default:'SHIPPER'"`
	PaymentTerms int                  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *billing.Customer {
	return &billing.Customer{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Name:                 m.Name,
		Type:                 m.Type,
		PaymentTerms:         m.PaymentTerms,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *billing.Customer) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.Name = c.Name
	m.Type = c.Type
	m.PaymentTerms = c.PaymentTerms
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *billing.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
// The MC number is stored relationally by id; the human-readable MC string
// is resolved through mc_numbers at read time. load_ids is a text[] column
// so the reverse lookup (loads -> invoices) stays a single query.
type InvoiceModel struct {
	CompanyAggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_company_number,priority:2"`
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	McNumberID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	LoadIDs       pq.StringArray        `gorm:"type:text[];not null"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	AmountPaid    decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	InvoiceDate   time.Time             `gorm:"not null;index"`
	DueDate       time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
// Rows with malformed load id entries are rejected rather than silently
// truncated.
func (m *InvoiceModel) ToDomain() (*billing.Invoice, error) {
	loadIDs := make([]uuid.UUID, 0, len(m.LoadIDs))
	for _, raw := range m.LoadIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invoice "+m.InvoiceNumber+" references malformed load id "+raw)
		}
		loadIDs = append(loadIDs, id)
	}
	return &billing.Invoice{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		InvoiceNumber:        m.InvoiceNumber,
		CustomerID:           m.CustomerID,
		McNumberID:           m.McNumberID,
		LoadIDs:              loadIDs,
		Total:                m.Total,
		AmountPaid:           m.AmountPaid,
		Status:               m.Status,
		InvoiceDate:          m.InvoiceDate,
		DueDate:              m.DueDate,
	}, nil
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainCompanyAggregateRoot(inv.CompanyAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.McNumberID = inv.McNumberID
	m.LoadIDs = make(pq.StringArray, len(inv.LoadIDs))
	for i, id := range inv.LoadIDs {
		m.LoadIDs[i] = id.String()
	}
	m.Total = inv.Total
	m.AmountPaid = inv.AmountPaid
	m.Status = inv.Status
	m.InvoiceDate = inv.InvoiceDate
	m.DueDate = inv.DueDate
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceBatchModel is the persistence model for the InvoiceBatch aggregate root.
type InvoiceBatchModel struct {
	CompanyAggregateModel
	BatchNumber string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_batch_company_number,priority:2"`
	McNumberID  *uuid.UUID              `gorm:"type:uuid;index"`
	TotalAmount decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Notes       string                  `gorm:"type:text"`
	Items       []InvoiceBatchItemModel `gorm:"foreignKey:BatchID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceBatchModel) TableName() string {
	return "invoice_batches"
}

// InvoiceBatchItemModel binds an invoice into a batch. The unique index on
// invoice_id is the database-side guarantee that an invoice is batched at
// most once, even across concurrent batch builds.
type InvoiceBatchItemModel struct {
	BaseModel
	BatchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (InvoiceBatchItemModel) TableName() string {
	return "invoice_batch_items"
}

// ToDomain converts the persistence model to a domain InvoiceBatch entity.
func (m *InvoiceBatchModel) ToDomain() *billing.InvoiceBatch {
	items := make([]billing.InvoiceBatchItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = billing.InvoiceBatchItem{
			BaseEntity: it.ToDomain(),
			BatchID:    it.BatchID,
			InvoiceID:  it.InvoiceID,
		}
	}
	return &billing.InvoiceBatch{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		BatchNumber:          m.BatchNumber,
		McNumberID:           m.McNumberID,
		TotalAmount:          m.TotalAmount,
		Notes:                m.Notes,
		Items:                items,
	}
}

// FromDomain populates the persistence model from a domain InvoiceBatch entity.
func (m *InvoiceBatchModel) FromDomain(b *billing.InvoiceBatch) {
	m.FromDomainCompanyAggregateRoot(b.CompanyAggregateRoot)
	m.BatchNumber = b.BatchNumber
	m.McNumberID = b.McNumberID
	m.TotalAmount = b.TotalAmount
	m.Notes = b.Notes
	m.Items = make([]InvoiceBatchItemModel, len(b.Items))
	for i, it := range b.Items {
		item := InvoiceBatchItemModel{
			BatchID:   b.ID,
			InvoiceID: it.InvoiceID,
		}
		item.FromDomainBaseEntity(it.BaseEntity)
		m.Items[i] = item
	}
}

// InvoiceBatchModelFromDomain creates a new persistence model from a domain InvoiceBatch.
func InvoiceBatchModelFromDomain(b *billing.InvoiceBatch) *InvoiceBatchModel {
	m := &InvoiceBatchModel{}
	m.FromDomain(b)
	return m
}

// BillingHoldModel is the persistence model for the BillingHold aggregate root.
type BillingHoldModel struct {
	CompanyAggregateModel
	LoadID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Reason     string     `gorm:"type:varchar(500);not null"`
	ReleasedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (BillingHoldModel) TableName() string {
	return "billing_holds"
}

// ToDomain converts the persistence model to a domain BillingHold entity.
func (m *BillingHoldModel) ToDomain() *billing.BillingHold {
	return &billing.BillingHold{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		LoadID:               m.LoadID,
		Reason:               m.Reason,
		ReleasedAt:           m.ReleasedAt,
	}
}

// FromDomain populates the persistence model from a domain BillingHold entity.
func (m *BillingHoldModel) FromDomain(h *billing.BillingHold) {
	m.FromDomainCompanyAggregateRoot(h.CompanyAggregateRoot)
	m.LoadID = h.LoadID
	m.Reason = h.Reason
	m.ReleasedAt = h.ReleasedAt
}

// BillingHoldModelFromDomain creates a new persistence model from a domain BillingHold.
func BillingHoldModelFromDomain(h *billing.BillingHold) *BillingHoldModel {
	m := &BillingHoldModel{}
	m.FromDomain(h)
	return m
}

// NumberSequenceModel holds the last issued value for a sequence scope.
// One row per (company, scope key); the allocator bumps last_value with an
// upsert inside the caller's transaction.
type NumberSequenceModel struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ScopeKey  string    `gorm:"type:varchar(100);primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}
