package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice read endpoints
type InvoiceHandler struct {
	BaseHandler
	queryService *billingapp.QueryService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(queryService *billingapp.QueryService) *InvoiceHandler {
	return &InvoiceHandler{queryService: queryService}
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Description  Lists the invoices visible to the caller under MC scoping
// @Tags         invoices
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by invoice status"
// @Success      200 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, total, err := h.queryService.ListInvoices(c.Request.Context(), caller, middleware.GetSelectedMc(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, newInvoiceListResponse(invoices), total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getInvoiceById
// @Summary      Get invoice by ID
// @Description  Retrieves one invoice if it falls inside the caller's MC scope
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.queryService.GetInvoice(c.Request.Context(), caller, middleware.GetSelectedMc(c), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newInvoiceResponse(*invoice))
}
