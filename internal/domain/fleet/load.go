package fleet

import (
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoadStatus represents the lifecycle status of a load
type LoadStatus string

const (
	LoadStatusPending         LoadStatus = "PENDING"
	LoadStatusAssigned        LoadStatus = "ASSIGNED"
	LoadStatusEnRoutePickup   LoadStatus = "EN_ROUTE_PICKUP"
	LoadStatusAtPickup        LoadStatus = "AT_PICKUP"
	LoadStatusLoaded          LoadStatus = "LOADED"
	LoadStatusEnRouteDelivery LoadStatus = "EN_ROUTE_DELIVERY"
	LoadStatusAtDelivery      LoadStatus = "AT_DELIVERY"
	LoadStatusDelivered       LoadStatus = "DELIVERED"
	LoadStatusBillingHold     LoadStatus = "BILLING_HOLD"
	LoadStatusReadyToBill     LoadStatus = "READY_TO_BILL"
	LoadStatusInvoiced        LoadStatus = "INVOICED"
	LoadStatusPaid            LoadStatus = "PAID"
	LoadStatusCancelled       LoadStatus = "CANCELLED"
)

// IsValid checks if the status is a known LoadStatus
func (s LoadStatus) IsValid() bool {
	switch s {
	case LoadStatusPending, LoadStatusAssigned, LoadStatusEnRoutePickup,
		LoadStatusAtPickup, LoadStatusLoaded, LoadStatusEnRouteDelivery,
		LoadStatusAtDelivery, LoadStatusDelivered, LoadStatusBillingHold,
		LoadStatusReadyToBill, LoadStatusInvoiced, LoadStatusPaid,
		LoadStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of LoadStatus
func (s LoadStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status ends the lifecycle
func (s LoadStatus) IsTerminal() bool {
	return s == LoadStatusPaid || s == LoadStatusCancelled
}

// forwardTransitions is the operational status ladder. BILLING_HOLD and
// CANCELLED are handled separately: a hold may be forced from any
// non-terminal position, and cancellation is allowed from any non-terminal
// state.
var forwardTransitions = map[LoadStatus][]LoadStatus{
	LoadStatusPending:         {LoadStatusAssigned},
	LoadStatusAssigned:        {LoadStatusEnRoutePickup},
	LoadStatusEnRoutePickup:   {LoadStatusAtPickup},
	LoadStatusAtPickup:        {LoadStatusLoaded},
	LoadStatusLoaded:          {LoadStatusEnRouteDelivery},
	LoadStatusEnRouteDelivery: {LoadStatusAtDelivery},
	LoadStatusAtDelivery:      {LoadStatusDelivered},
	LoadStatusDelivered:       {LoadStatusReadyToBill, LoadStatusInvoiced},
	LoadStatusBillingHold:     {LoadStatusDelivered, LoadStatusReadyToBill},
	LoadStatusReadyToBill:     {LoadStatusInvoiced},
	LoadStatusInvoiced:        {LoadStatusPaid},
}

// CanTransitionTo checks if the status can transition to the target status
func (s LoadStatus) CanTransitionTo(target LoadStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == LoadStatusCancelled || target == LoadStatusBillingHold {
		return true
	}
	for _, next := range forwardTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// InvoicingCandidate reports whether a load at this status may enter the
// billing pipeline. Only DELIVERED-or-later loads qualify; a billing hold
// removes candidacy until released.
func (s LoadStatus) InvoicingCandidate() bool {
	switch s {
	case LoadStatusDelivered, LoadStatusReadyToBill, LoadStatusInvoiced:
		return true
	}
	return false
}

// AlreadyInvoiced reports whether the load's invoice should be located by
// reverse lookup instead of generated
func (s LoadStatus) AlreadyInvoiced() bool {
	return s == LoadStatusInvoiced || s == LoadStatusReadyToBill
}

// Load represents a single shipment tracked from creation through delivery
// and payment. Loads are owned by a company, scoped by MC number, and
// referenced (not owned) by invoices.
type Load struct {
	shared.CompanyAggregateRoot
	LoadNumber   string
	McNumberID   uuid.UUID
	CustomerID   uuid.UUID
	DriverID     *uuid.UUID
	Status       LoadStatus
	Revenue      decimal.Decimal
	DriverPay    decimal.Decimal
	FuelAdvance  decimal.Decimal
	ServiceFee   decimal.Decimal
	TotalMiles   decimal.Decimal
	Weight       decimal.Decimal
	PickupDate   *time.Time
	DeliveryDate *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
	DeletedAt    *time.Time
}

// NewLoad creates a new load in PENDING status. Every persisted load has a
// non-nil MC number id resolved at creation time.
func NewLoad(companyID uuid.UUID, loadNumber string, mcNumberID, customerID uuid.UUID) (*Load, error) {
	if loadNumber == "" {
		return nil, shared.NewDomainError("INVALID_LOAD_NUMBER", "Load number cannot be empty")
	}
	if mcNumberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MC_NUMBER", "Load must be assigned to an MC number at creation")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Load{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		LoadNumber:           loadNumber,
		McNumberID:           mcNumberID,
		CustomerID:           customerID,
		Status:               LoadStatusPending,
		Revenue:              decimal.Zero,
		DriverPay:            decimal.Zero,
		FuelAdvance:          decimal.Zero,
		ServiceFee:           decimal.Zero,
		TotalMiles:           decimal.Zero,
		Weight:               decimal.Zero,
	}, nil
}

// TransitionTo moves the load to the target status, enforcing the lifecycle
func (l *Load) TransitionTo(target LoadStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown load status: "+string(target))
	}
	if !l.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Load cannot transition from "+l.Status.String()+" to "+target.String())
	}

	now := time.Now()
	l.Status = target
	l.UpdatedAt = now

	switch target {
	case LoadStatusDelivered:
		l.DeliveredAt = &now
	case LoadStatusCancelled:
		l.CancelledAt = &now
	}
	return nil
}

// Cancel moves the load to CANCELLED with a reason
func (l *Load) Cancel(reason string) error {
	if err := l.TransitionTo(LoadStatusCancelled); err != nil {
		return err
	}
	l.CancelReason = reason
	return nil
}

// ForceBillingHold puts the load on billing hold regardless of its position
// in the operational ladder. Terminal loads cannot be held.
func (l *Load) ForceBillingHold() error {
	return l.TransitionTo(LoadStatusBillingHold)
}

// AssignDriver assigns a driver and the agreed pay
func (l *Load) AssignDriver(driverID uuid.UUID, driverPay decimal.Decimal) error {
	if driverID == uuid.Nil {
		return shared.NewDomainError("INVALID_DRIVER", "Driver ID cannot be empty")
	}
	if driverPay.IsNegative() {
		return shared.NewDomainError("INVALID_PAY", "Driver pay cannot be negative")
	}
	l.DriverID = &driverID
	l.DriverPay = driverPay
	l.UpdatedAt = time.Now()
	return nil
}

// SetFinancials updates the load's money and measurement fields
func (l *Load) SetFinancials(revenue, weight, totalMiles decimal.Decimal) error {
	if revenue.IsNegative() {
		return shared.NewDomainError("INVALID_REVENUE", "Revenue cannot be negative")
	}
	if weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if totalMiles.IsNegative() {
		return shared.NewDomainError("INVALID_MILES", "Total miles cannot be negative")
	}
	l.Revenue = revenue
	l.Weight = weight
	l.TotalMiles = totalMiles
	l.UpdatedAt = time.Now()
	return nil
}

// IsDeleted reports whether the load has been soft-deleted
func (l *Load) IsDeleted() bool {
	return l.DeletedAt != nil
}
