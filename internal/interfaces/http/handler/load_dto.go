package handler

import (
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
)

// LoadResponse represents a load in API responses
// @Description Load details returned by the API
type LoadResponse struct {
	ID           string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CompanyID    string  `json:"companyId" example:"550e8400-e29b-41d4-a716-446655440001"`
	LoadNumber   string  `json:"loadNumber" example:"L-2026-1042"`
	McNumberID   string  `json:"mcNumberId" example:"550e8400-e29b-41d4-a716-446655440002"`
	CustomerID   string  `json:"customerId" example:"550e8400-e29b-41d4-a716-446655440003"`
	DriverID     *string `json:"driverId,omitempty"`
	Status       string  `json:"status" example:"DELIVERED"`
	Revenue      string  `json:"revenue" example:"1500.00"`
	DriverPay    string  `json:"driverPay" example:"450.00"`
	FuelAdvance  string  `json:"fuelAdvance" example:"0.00"`
	ServiceFee   string  `json:"serviceFee" example:"0.00"`
	TotalMiles   string  `json:"totalMiles" example:"412.5"`
	Weight       string  `json:"weight" example:"42000"`
	PickupDate   *string `json:"pickupDate,omitempty"`
	DeliveryDate *string `json:"deliveryDate,omitempty"`
	DeliveredAt  *string `json:"deliveredAt,omitempty"`
	CancelledAt  *string `json:"cancelledAt,omitempty"`
	CancelReason string  `json:"cancelReason,omitempty"`
	CreatedAt    string  `json:"createdAt" example:"2026-01-24T12:00:00Z"`
	UpdatedAt    string  `json:"updatedAt" example:"2026-01-24T12:00:00Z"`
	Version      int     `json:"version" example:"1"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func newLoadResponse(load fleet.Load) LoadResponse {
	resp := LoadResponse{
		ID:           load.ID.String(),
		CompanyID:    load.CompanyID.String(),
		LoadNumber:   load.LoadNumber,
		McNumberID:   load.McNumberID.String(),
		CustomerID:   load.CustomerID.String(),
		Status:       string(load.Status),
		Revenue:      load.Revenue.StringFixed(2),
		DriverPay:    load.DriverPay.StringFixed(2),
		FuelAdvance:  load.FuelAdvance.StringFixed(2),
		ServiceFee:   load.ServiceFee.StringFixed(2),
		TotalMiles:   load.TotalMiles.String(),
		Weight:       load.Weight.String(),
		PickupDate:   formatTime(load.PickupDate),
		DeliveryDate: formatTime(load.DeliveryDate),
		DeliveredAt:  formatTime(load.DeliveredAt),
		CancelledAt:  formatTime(load.CancelledAt),
		CancelReason: load.CancelReason,
		CreatedAt:    load.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    load.UpdatedAt.Format(time.RFC3339),
		Version:      load.Version,
	}
	if load.DriverID != nil {
		id := load.DriverID.String()
		resp.DriverID = &id
	}
	return resp
}

func newLoadListResponse(loads []fleet.Load) []LoadResponse {
	out := make([]LoadResponse, len(loads))
	for i, load := range loads {
		out[i] = newLoadResponse(load)
	}
	return out
}
