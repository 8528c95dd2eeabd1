package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/middleware"
)

// BillingHoldHandler handles billing hold endpoints
type BillingHoldHandler struct {
	BaseHandler
	holdService *billingapp.HoldService
}

// NewBillingHoldHandler creates a new BillingHoldHandler
func NewBillingHoldHandler(holdService *billingapp.HoldService) *BillingHoldHandler {
	return &BillingHoldHandler{holdService: holdService}
}

// PlaceHoldRequest represents a request to place a billing hold
// @Description Request body for placing a billing hold on a load
type PlaceHoldRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500" example:"disputed lumper fee"`
}

// Place godoc
// @ID           placeBillingHold
// @Summary      Place a billing hold
// @Description  Blocks a load from invoicing until the hold is released
// @Tags         billing-holds
// @Accept       json
// @Produce      json
// @Param        id path string true "Load ID" format(uuid)
// @Param        request body PlaceHoldRequest true "Hold request"
// @Success      201 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /loads/{id}/billing-hold [post]
func (h *BillingHoldHandler) Place(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid load ID format")
		return
	}

	var req PlaceHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	hold, err := h.holdService.PlaceHold(c.Request.Context(), caller, loadID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newHoldResponse(*hold))
}

// Release godoc
// @ID           releaseBillingHold
// @Summary      Release a billing hold
// @Description  Lifts the active hold on a load so it can be invoiced again
// @Tags         billing-holds
// @Produce      json
// @Param        id path string true "Load ID" format(uuid)
// @Success      204
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /loads/{id}/billing-hold [delete]
func (h *BillingHoldHandler) Release(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid load ID format")
		return
	}

	if err := h.holdService.ReleaseHold(c.Request.Context(), caller, loadID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
