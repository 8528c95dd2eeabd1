package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/middleware"
)

// McNumberHandler handles MC number admin endpoints
type McNumberHandler struct {
	BaseHandler
	mcService *identityapp.McNumberService
}

// NewMcNumberHandler creates a new McNumberHandler
func NewMcNumberHandler(mcService *identityapp.McNumberService) *McNumberHandler {
	return &McNumberHandler{mcService: mcService}
}

// CreateMcNumberRequest represents a request to register an MC number
// @Description Request body for registering a new MC number
type CreateMcNumberRequest struct {
	Number      string `json:"number" binding:"required,min=1,max=50" example:"MC-123456"`
	CompanyName string `json:"companyName" binding:"required,min=1,max=200" example:"Blue Ridge Carriers LLC"`
	Type        string `json:"type" binding:"required,oneof=CARRIER BROKER" example:"CARRIER"`
}

// UpdateMcNumberRequest represents a request to update an MC number
// @Description Request body for updating an MC number
type UpdateMcNumberRequest struct {
	CompanyName *string `json:"companyName" binding:"omitempty,min=1,max=200"`
	IsDefault   *bool   `json:"isDefault"`
}

// List godoc
// @ID           listMcNumbers
// @Summary      List MC numbers
// @Description  Lists the live MC numbers of the caller's company
// @Tags         mc-numbers
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /mc-numbers [get]
func (h *McNumberHandler) List(c *gin.Context) {
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

	mcs, err := h.mcService.ListMcNumbers(c.Request.Context(), caller, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newMcNumberListResponse(mcs))
}

// Create godoc
// @ID           createMcNumber
// @Summary      Register a new MC number
// @Description  Registers an MC number; the company's first MC number becomes the default
// @Tags         mc-numbers
// @Accept       json
// @Produce      json
// @Param        request body CreateMcNumberRequest true "MC number creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Security     BearerAuth
// @Router       /mc-numbers [post]
func (h *McNumberHandler) Create(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateMcNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	mc, err := h.mcService.CreateMcNumber(c.Request.Context(), caller, req.Number, req.CompanyName, identity.McNumberType(req.Type))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newMcNumberResponse(*mc))
}

// Update godoc
// @ID           updateMcNumber
// @Summary      Update an MC number
// @Description  Renames the operating company or swaps the company default
// @Tags         mc-numbers
// @Accept       json
// @Produce      json
// @Param        id path string true "MC number ID" format(uuid)
// @Param        request body UpdateMcNumberRequest true "MC number update request"
// @Success      200 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /mc-numbers/{id} [patch]
func (h *McNumberHandler) Update(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	mcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid MC number ID format")
		return
	}

	var req UpdateMcNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if req.CompanyName != nil {
		if _, err := h.mcService.RenameMcNumber(c.Request.Context(), caller, mcID, *req.CompanyName); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if req.IsDefault != nil && *req.IsDefault {
		if err := h.mcService.SetDefaultMcNumber(c.Request.Context(), caller, mcID); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	mcs, err := h.mcService.ListMcNumbers(c.Request.Context(), caller, shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	for _, mc := range mcs {
		if mc.ID == mcID {
			h.Success(c, newMcNumberResponse(mc))
			return
		}
	}
	h.NotFound(c, "MC number not found")
}

// Delete godoc
// @ID           deleteMcNumber
// @Summary      Delete an MC number
// @Description  Soft-deletes an MC number; the default MC number cannot be deleted
// @Tags         mc-numbers
// @Produce      json
// @Param        id path string true "MC number ID" format(uuid)
// @Success      204
// @Failure      403 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /mc-numbers/{id} [delete]
func (h *McNumberHandler) Delete(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	mcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid MC number ID format")
		return
	}

	if err := h.mcService.DeleteMcNumber(c.Request.Context(), caller, mcID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
