package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	fleetapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/dto"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/middleware"
)

// LoadHandler handles load-related API endpoints
type LoadHandler struct {
	BaseHandler
	loadService *fleetapp.LoadService
}

// NewLoadHandler creates a new LoadHandler
func NewLoadHandler(loadService *fleetapp.LoadService) *LoadHandler {
	return &LoadHandler{loadService: loadService}
}

// getCaller extracts the authenticated caller, or reports 401
func getCaller(c *gin.Context) (identity.CallerContext, bool) {
	caller, ok := middleware.GetCaller(c)
	return caller, ok
}

// listFilter converts list query parameters into a repository filter
func listFilter(c *gin.Context) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{},
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.Filters["customer_id"] = customerID
	}
	return filter, nil
}

// CreateLoadRequest represents a request to create a new load
// @Description Request body for creating a new load
type CreateLoadRequest struct {
	LoadNumber   string     `json:"loadNumber" binding:"required,min=1,max=50" example:"L-2026-1042"`
	McNumberID   string     `json:"mcNumberId" binding:"required,uuid"`
	CustomerID   string     `json:"customerId" binding:"required,uuid"`
	DriverID     *string    `json:"driverId" binding:"omitempty,uuid"`
	Revenue      *float64   `json:"revenue" binding:"omitempty,gte=0" example:"1500.00"`
	DriverPay    *float64   `json:"driverPay" binding:"omitempty,gte=0" example:"450.00"`
	FuelAdvance  *float64   `json:"fuelAdvance" binding:"omitempty,gte=0" example:"0"`
	ServiceFee   *float64   `json:"serviceFee" binding:"omitempty,gte=0" example:"0"`
	TotalMiles   *float64   `json:"totalMiles" binding:"omitempty,gte=0" example:"412.5"`
	Weight       *float64   `json:"weight" binding:"omitempty,gte=0" example:"42000"`
	PickupDate   *time.Time `json:"pickupDate"`
	DeliveryDate *time.Time `json:"deliveryDate"`
}

// UpdateLoadStatusRequest represents a request to move a load through its
// lifecycle
// @Description Request body for updating a load's status
type UpdateLoadStatusRequest struct {
	Status       string `json:"status" binding:"required" example:"DELIVERED"`
	CancelReason string `json:"cancelReason" binding:"max=500"`
}

func optionalDecimal(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

// List godoc
// @ID           listLoads
// @Summary      List loads
// @Description  Lists the loads visible to the caller under MC scoping
// @Tags         loads
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by load status"
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /loads [get]
func (h *LoadHandler) List(c *gin.Context) {
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

	loads, total, err := h.loadService.ListLoads(c.Request.Context(), caller, middleware.GetSelectedMc(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, newLoadListResponse(loads), total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getLoadById
// @Summary      Get load by ID
// @Description  Retrieves one load if it falls inside the caller's MC scope
// @Tags         loads
// @Produce      json
// @Param        id path string true "Load ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /loads/{id} [get]
func (h *LoadHandler) GetByID(c *gin.Context) {
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

	load, err := h.loadService.GetLoad(c.Request.Context(), caller, middleware.GetSelectedMc(c), loadID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newLoadResponse(*load))
}

// Create godoc
// @ID           createLoad
// @Summary      Create a new load
// @Description  Creates a load in PENDING status under one of the caller's MC numbers
// @Tags         loads
// @Accept       json
// @Produce      json
// @Param        request body CreateLoadRequest true "Load creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /loads [post]
func (h *LoadHandler) Create(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	mcNumberID, err := uuid.Parse(req.McNumberID)
	if err != nil {
		h.BadRequest(c, "Invalid MC number ID format")
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	appReq := fleetapp.CreateLoadRequest{
		LoadNumber:   req.LoadNumber,
		McNumberID:   mcNumberID,
		CustomerID:   customerID,
		Revenue:      optionalDecimal(req.Revenue),
		DriverPay:    optionalDecimal(req.DriverPay),
		FuelAdvance:  optionalDecimal(req.FuelAdvance),
		ServiceFee:   optionalDecimal(req.ServiceFee),
		TotalMiles:   optionalDecimal(req.TotalMiles),
		Weight:       optionalDecimal(req.Weight),
		PickupDate:   req.PickupDate,
		DeliveryDate: req.DeliveryDate,
	}
	if req.DriverID != nil {
		driverID, err := uuid.Parse(*req.DriverID)
		if err != nil {
			h.BadRequest(c, "Invalid driver ID format")
			return
		}
		appReq.DriverID = &driverID
	}

	load, err := h.loadService.CreateLoad(c.Request.Context(), caller, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newLoadResponse(*load))
}

// UpdateStatus godoc
// @ID           updateLoadStatus
// @Summary      Update load status
// @Description  Moves a load through its delivery lifecycle
// @Tags         loads
// @Accept       json
// @Produce      json
// @Param        id path string true "Load ID" format(uuid)
// @Param        request body UpdateLoadStatusRequest true "Status update request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /loads/{id}/status [patch]
func (h *LoadHandler) UpdateStatus(c *gin.Context) {
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

	var req UpdateLoadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	target := fleet.LoadStatus(req.Status)
	if !target.IsValid() {
		h.BadRequest(c, "Unknown load status: "+req.Status)
		return
	}

	load, err := h.loadService.UpdateStatus(c.Request.Context(), caller, loadID, target, req.CancelReason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newLoadResponse(*load))
}
