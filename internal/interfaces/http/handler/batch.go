package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/dto"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/middleware"
)

// BatchHandler handles invoice batch endpoints
type BatchHandler struct {
	BaseHandler
	fromLoadsService *billingapp.FromLoadsService
	queryService     *billingapp.QueryService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(fromLoadsService *billingapp.FromLoadsService, queryService *billingapp.QueryService) *BatchHandler {
	return &BatchHandler{
		fromLoadsService: fromLoadsService,
		queryService:     queryService,
	}
}

// CreateBatchFromLoadsRequest represents a request to batch invoices for a
// set of loads
// @Description Request body for building an invoice batch from loads
type CreateBatchFromLoadsRequest struct {
	LoadIDs    []string `json:"loadIds" binding:"required,min=1,dive,uuid"`
	McNumberID *string  `json:"mcNumberId" binding:"omitempty,uuid"`
	Notes      string   `json:"notes" binding:"max=1000"`
}

// CreateFromLoads godoc
// @ID           createBatchFromLoads
// @Summary      Create an invoice batch from loads
// @Description  Validates the loads, generates missing invoices per (customer, MC) group and bundles them into a batch
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        request body CreateBatchFromLoadsRequest true "Batch request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /batches/from-loads [post]
func (h *BatchHandler) CreateFromLoads(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateBatchFromLoadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	loadIDs := make([]uuid.UUID, len(req.LoadIDs))
	for i, raw := range req.LoadIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid load ID format")
			return
		}
		loadIDs[i] = id
	}

	appReq := billingapp.FromLoadsRequest{
		LoadIDs: loadIDs,
		Notes:   req.Notes,
	}
	if req.McNumberID != nil {
		mcID, err := uuid.Parse(*req.McNumberID)
		if err != nil {
			h.BadRequest(c, "Invalid MC number ID format")
			return
		}
		appReq.McNumberID = &mcID
	}

	result, err := h.fromLoadsService.CreateBatch(c.Request.Context(), caller, middleware.GetSelectedMc(c), appReq)
	if err != nil {
		var validationErr *billingapp.ValidationFailedError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
				dto.ErrCodeValidation,
				validationErr.Error(),
				validationErr.Issues,
			))
			return
		}
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBatchCreatedResponse(
		newBatchResponse(*result.Batch, ""),
		result.GeneratedInvoices,
		result.ExistingInvoices,
	))
}

// List godoc
// @ID           listBatches
// @Summary      List invoice batches
// @Description  Lists the company's invoice batches
// @Tags         batches
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /batches [get]
func (h *BatchHandler) List(c *gin.Context) {
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

	batches, total, err := h.queryService.ListBatches(c.Request.Context(), caller, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, newBatchListResponse(batches), total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getBatchById
// @Summary      Get batch by ID
// @Description  Retrieves one invoice batch with its member invoices
// @Tags         batches
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /batches/{id} [get]
func (h *BatchHandler) GetByID(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	batch, err := h.queryService.GetBatch(c.Request.Context(), caller, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newBatchResponse(batch.InvoiceBatch, batch.McNumber))
}
