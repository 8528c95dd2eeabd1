package handler

import (
	"time"

	billingapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
)

// InvoiceResponse represents an invoice in API responses
// @Description Invoice details returned by the API
type InvoiceResponse struct {
	ID            string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CompanyID     string   `json:"companyId" example:"550e8400-e29b-41d4-a716-446655440001"`
	InvoiceNumber string   `json:"invoiceNumber" example:"INV-2026-001"`
	CustomerID    string   `json:"customerId" example:"550e8400-e29b-41d4-a716-446655440003"`
	McNumberID    string   `json:"mcNumberId" example:"550e8400-e29b-41d4-a716-446655440002"`
	McNumber      string   `json:"mcNumber" example:"MC-123456"`
	LoadIDs       []string `json:"loadIds"`
	Total         string   `json:"total" example:"1500.00"`
	AmountPaid    string   `json:"amountPaid" example:"0.00"`
	Balance       string   `json:"balance" example:"1500.00"`
	Status        string   `json:"status" example:"PENDING"`
	InvoiceDate   string   `json:"invoiceDate" example:"2026-01-24T12:00:00Z"`
	DueDate       string   `json:"dueDate" example:"2026-02-23T12:00:00Z"`
	CreatedAt     string   `json:"createdAt" example:"2026-01-24T12:00:00Z"`
}

func newInvoiceResponse(view billingapp.InvoiceView) InvoiceResponse {
	loadIDs := make([]string, len(view.LoadIDs))
	for i, id := range view.LoadIDs {
		loadIDs[i] = id.String()
	}
	return InvoiceResponse{
		ID:            view.ID.String(),
		CompanyID:     view.CompanyID.String(),
		InvoiceNumber: view.InvoiceNumber,
		CustomerID:    view.CustomerID.String(),
		McNumberID:    view.McNumberID.String(),
		McNumber:      view.McNumber,
		LoadIDs:       loadIDs,
		Total:         view.Total.StringFixed(2),
		AmountPaid:    view.AmountPaid.StringFixed(2),
		Balance:       view.Balance().StringFixed(2),
		Status:        string(view.Status),
		InvoiceDate:   view.InvoiceDate.Format(time.RFC3339),
		DueDate:       view.DueDate.Format(time.RFC3339),
		CreatedAt:     view.CreatedAt.Format(time.RFC3339),
	}
}

func newInvoiceListResponse(views []billingapp.InvoiceView) []InvoiceResponse {
	out := make([]InvoiceResponse, len(views))
	for i, v := range views {
		out[i] = newInvoiceResponse(v)
	}
	return out
}

// BatchResponse represents an invoice batch in API responses
// @Description Invoice batch details returned by the API
type BatchResponse struct {
	ID           string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CompanyID    string   `json:"companyId" example:"550e8400-e29b-41d4-a716-446655440001"`
	BatchNumber  string   `json:"batchNumber" example:"BATCH-2026-W04-001"`
	McNumberID   *string  `json:"mcNumberId,omitempty"`
	McNumber     string   `json:"mcNumber,omitempty" example:"MC-123456"`
	TotalAmount  string   `json:"totalAmount" example:"4000.00"`
	Notes        string   `json:"notes,omitempty"`
	InvoiceIDs   []string `json:"invoiceIds"`
	InvoiceCount int      `json:"invoiceCount" example:"2"`
	CreatedAt    string   `json:"createdAt" example:"2026-01-24T12:00:00Z"`
}

func newBatchResponse(batch billing.InvoiceBatch, mcNumber string) BatchResponse {
	invoiceIDs := make([]string, len(batch.Items))
	for i, item := range batch.Items {
		invoiceIDs[i] = item.InvoiceID.String()
	}
	resp := BatchResponse{
		ID:           batch.ID.String(),
		CompanyID:    batch.CompanyID.String(),
		BatchNumber:  batch.BatchNumber,
		McNumber:     mcNumber,
		TotalAmount:  batch.TotalAmount.StringFixed(2),
		Notes:        batch.Notes,
		InvoiceIDs:   invoiceIDs,
		InvoiceCount: batch.InvoiceCount(),
		CreatedAt:    batch.CreatedAt.Format(time.RFC3339),
	}
	if batch.McNumberID != nil {
		id := batch.McNumberID.String()
		resp.McNumberID = &id
	}
	return resp
}

func newBatchListResponse(views []billingapp.BatchView) []BatchResponse {
	out := make([]BatchResponse, len(views))
	for i, v := range views {
		out[i] = newBatchResponse(v.InvoiceBatch, v.McNumber)
	}
	return out
}

// HoldResponse represents a billing hold in API responses
// @Description Billing hold details returned by the API
type HoldResponse struct {
	ID         string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	LoadID     string  `json:"loadId" example:"550e8400-e29b-41d4-a716-446655440004"`
	Reason     string  `json:"reason" example:"disputed lumper fee"`
	Active     bool    `json:"active" example:"true"`
	ReleasedAt *string `json:"releasedAt,omitempty"`
	CreatedAt  string  `json:"createdAt" example:"2026-01-24T12:00:00Z"`
}

func newHoldResponse(hold billing.BillingHold) HoldResponse {
	return HoldResponse{
		ID:         hold.ID.String(),
		LoadID:     hold.LoadID.String(),
		Reason:     hold.Reason,
		Active:     hold.Active(),
		ReleasedAt: formatTime(hold.ReleasedAt),
		CreatedAt:  hold.CreatedAt.Format(time.RFC3339),
	}
}
