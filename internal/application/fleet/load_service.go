package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/mcscope"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/telemetry"
)

// CreateLoadRequest carries the fields of a new load
type CreateLoadRequest struct {
	LoadNumber   string
	McNumberID   uuid.UUID
	CustomerID   uuid.UUID
	DriverID     *uuid.UUID
	Revenue      decimal.Decimal
	DriverPay    decimal.Decimal
	FuelAdvance  decimal.Decimal
	ServiceFee   decimal.Decimal
	TotalMiles   decimal.Decimal
	Weight       decimal.Decimal
	PickupDate   *time.Time
	DeliveryDate *time.Time
}

// LoadService manages loads under MC scoping
type LoadService struct {
	loadRepo fleet.LoadRepository
	mcRepo   identity.McNumberRepository
	logger   *zap.Logger
}

// NewLoadService creates a new LoadService
func NewLoadService(loadRepo fleet.LoadRepository, mcRepo identity.McNumberRepository, logger *zap.Logger) *LoadService {
	return &LoadService{
		loadRepo: loadRepo,
		mcRepo:   mcRepo,
		logger:   logger,
	}
}

// ListLoads returns the loads visible to the caller
func (s *LoadService) ListLoads(ctx context.Context, caller identity.CallerContext, selectedMc *uuid.UUID, filter shared.Filter) ([]fleet.Load, int64, error) {
	scope, err := mcscope.Resolve(caller, selectedMc)
	if err != nil {
		return nil, 0, err
	}
	return s.loadRepo.FindAllScoped(ctx, scope.ApplyToQuery(), filter)
}

// GetLoad returns one load if it falls inside the caller's scope
func (s *LoadService) GetLoad(ctx context.Context, caller identity.CallerContext, selectedMc *uuid.UUID, id uuid.UUID) (*fleet.Load, error) {
	scope, err := mcscope.Resolve(caller, selectedMc)
	if err != nil {
		return nil, err
	}
	load, err := s.loadRepo.FindByIDForCompany(ctx, caller.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsMc(load.McNumberID) {
		return nil, shared.ErrNotFound
	}
	return load, nil
}

// CreateLoad creates a new load under one of the caller's MC numbers
func (s *LoadService) CreateLoad(ctx context.Context, caller identity.CallerContext, req CreateLoadRequest) (*fleet.Load, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "load", "create")
	defer span.End()

	if !caller.CanAccessMc(req.McNumberID) {
		return nil, shared.ErrForbidden
	}
	// The MC number must be live; soft-deleted MC numbers take no new loads
	if _, err := s.mcRepo.FindByIDForCompany(ctx, caller.CompanyID, req.McNumberID); err != nil {
		return nil, err
	}

	exists, err := s.loadRepo.ExistsByLoadNumber(ctx, caller.CompanyID, req.LoadNumber)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check load number: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Load number "+req.LoadNumber+" already exists")
	}

	load, err := fleet.NewLoad(caller.CompanyID, req.LoadNumber, req.McNumberID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	createdBy := caller.UserID
	load.CreatedBy = &createdBy
	load.Revenue = req.Revenue
	load.DriverPay = req.DriverPay
	load.FuelAdvance = req.FuelAdvance
	load.ServiceFee = req.ServiceFee
	load.TotalMiles = req.TotalMiles
	load.Weight = req.Weight
	load.PickupDate = req.PickupDate
	load.DeliveryDate = req.DeliveryDate
	if req.DriverID != nil {
		if err := load.AssignDriver(*req.DriverID, req.DriverPay); err != nil {
			return nil, err
		}
	}

	if err := s.loadRepo.Save(ctx, load); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save load: %w", err)
	}

	s.logger.Info("load created",
		zap.String("load_number", load.LoadNumber),
		zap.String("mc_number_id", load.McNumberID.String()))
	return load, nil
}

// UpdateStatus moves a load through its lifecycle. cancelReason is only
// consulted when the target status is CANCELLED.
func (s *LoadService) UpdateStatus(ctx context.Context, caller identity.CallerContext, loadID uuid.UUID, target fleet.LoadStatus, cancelReason string) (*fleet.Load, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "load", "update_status")
	defer span.End()
	telemetry.SetAttribute(span, "target_status", string(target))

	if err := identity.Allow(caller, identity.CapWriteLoadStatus); err != nil {
		return nil, err
	}

	load, err := s.loadRepo.FindByIDForCompany(ctx, caller.CompanyID, loadID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccessMc(load.McNumberID) {
		return nil, shared.ErrForbidden
	}

	if target == fleet.LoadStatusCancelled {
		err = load.Cancel(cancelReason)
	} else {
		err = load.TransitionTo(target)
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRepo.UpdateStatus(ctx, load); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("load status updated",
		zap.String("load_number", load.LoadNumber),
		zap.String("status", string(load.Status)))
	return load, nil
}
