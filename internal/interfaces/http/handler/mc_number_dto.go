package handler

import (
	"time"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
)

// McNumberResponse represents an MC number in API responses
// @Description MC number details returned by the API
type McNumberResponse struct {
	ID          string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CompanyID   string `json:"companyId" example:"550e8400-e29b-41d4-a716-446655440001"`
	Number      string `json:"number" example:"MC-123456"`
	CompanyName string `json:"companyName" example:"Blue Ridge Carriers LLC"`
	Type        string `json:"type" example:"CARRIER" enums:"CARRIER,BROKER"`
	IsDefault   bool   `json:"isDefault" example:"true"`
	CreatedAt   string `json:"createdAt" example:"2026-01-24T12:00:00Z"`
	UpdatedAt   string `json:"updatedAt" example:"2026-01-24T12:00:00Z"`
}

func newMcNumberResponse(mc identity.McNumber) McNumberResponse {
	return McNumberResponse{
		ID:          mc.ID.String(),
		CompanyID:   mc.CompanyID.String(),
		Number:      mc.Number,
		CompanyName: mc.CompanyName,
		Type:        string(mc.Type),
		IsDefault:   mc.IsDefault,
		CreatedAt:   mc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   mc.UpdatedAt.Format(time.RFC3339),
	}
}

func newMcNumberListResponse(mcs []identity.McNumber) []McNumberResponse {
	out := make([]McNumberResponse, len(mcs))
	for i, mc := range mcs {
		out[i] = newMcNumberResponse(mc)
	}
	return out
}
