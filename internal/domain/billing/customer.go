package billing

import (
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerType distinguishes direct shippers from brokerages. Brokerage
// customers relax the rate-match rule during ready-to-bill checks because
// brokered loads may be split-invoiced.
type CustomerType string

const (
	CustomerTypeShipper CustomerType = "SHIPPER"
	CustomerTypeBroker  CustomerType = "BROKER"
)

// DefaultPaymentTermsDays is used when a customer has no explicit terms
const DefaultPaymentTermsDays = 30

// Customer is the billing view of a customer: the fields the pipeline needs
// to compute due dates and eligibility. Full customer management lives with
// an external collaborator.
type Customer struct {
	shared.CompanyAggregateRoot
	Name         string
	Type         CustomerType
	PaymentTerms int // days until invoice due; 0 means DefaultPaymentTermsDays
}

// NewCustomer creates a billing customer record
func NewCustomer(companyID uuid.UUID, name string, ctype CustomerType, paymentTerms int) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if ctype != CustomerTypeShipper && ctype != CustomerTypeBroker {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_TYPE", "Customer type must be SHIPPER or BROKER")
	}
	if paymentTerms < 0 {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms cannot be negative")
	}
	return &Customer{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Type:                 ctype,
		PaymentTerms:         paymentTerms,
	}, nil
}

// EffectivePaymentTerms returns the customer's terms or the 30-day default
func (c *Customer) EffectivePaymentTerms() int {
	if c.PaymentTerms <= 0 {
		return DefaultPaymentTermsDays
	}
	return c.PaymentTerms
}

// IsBroker reports whether brokerage split invoicing applies
func (c *Customer) IsBroker() bool {
	return c.Type == CustomerTypeBroker
}
