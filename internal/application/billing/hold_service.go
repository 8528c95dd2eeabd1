package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

// HoldService places and releases billing holds on loads
type HoldService struct {
	holdRepo billing.BillingHoldRepository
	loadRepo fleet.LoadRepository
	logger   *zap.Logger
}

// NewHoldService creates a new HoldService
func NewHoldService(holdRepo billing.BillingHoldRepository, loadRepo fleet.LoadRepository, logger *zap.Logger) *HoldService {
	return &HoldService{
		holdRepo: holdRepo,
		loadRepo: loadRepo,
		logger:   logger,
	}
}

// PlaceHold blocks a load from invoicing. The load is moved to
// BILLING_HOLD when its lifecycle allows it; the hold itself blocks
// invoicing either way.
func (s *HoldService) PlaceHold(ctx context.Context, caller identity.CallerContext, loadID uuid.UUID, reason string) (*billing.BillingHold, error) {
	if err := identity.Allow(caller, identity.CapManageHolds); err != nil {
		return nil, err
	}

	load, err := s.loadRepo.FindByIDForCompany(ctx, caller.CompanyID, loadID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccessMc(load.McNumberID) {
		return nil, shared.ErrForbidden
	}

	if _, err := s.holdRepo.FindActiveByLoadID(ctx, loadID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Load already has an active billing hold")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing holds: %w", err)
	}

	hold, err := billing.NewBillingHold(caller.CompanyID, loadID, caller.UserID, reason)
	if err != nil {
		return nil, err
	}
	if err := s.holdRepo.Save(ctx, hold); err != nil {
		return nil, fmt.Errorf("failed to save billing hold: %w", err)
	}

	if err := load.ForceBillingHold(); err == nil {
		if err := s.loadRepo.UpdateStatus(ctx, load); err != nil {
			s.logger.Warn("hold placed but load status not updated",
				zap.String("load_number", load.LoadNumber), zap.Error(err))
		}
	}

	s.logger.Info("billing hold placed",
		zap.String("load_number", load.LoadNumber),
		zap.String("reason", reason))
	return hold, nil
}

// ReleaseHold lifts the active hold on a load and returns it to DELIVERED
// when it was parked in BILLING_HOLD.
func (s *HoldService) ReleaseHold(ctx context.Context, caller identity.CallerContext, loadID uuid.UUID) error {
	if err := identity.Allow(caller, identity.CapManageHolds); err != nil {
		return err
	}

	load, err := s.loadRepo.FindByIDForCompany(ctx, caller.CompanyID, loadID)
	if err != nil {
		return err
	}
	if !caller.CanAccessMc(load.McNumberID) {
		return shared.ErrForbidden
	}

	hold, err := s.holdRepo.FindActiveByLoadID(ctx, loadID)
	if err != nil {
		return err
	}
	if err := hold.Release(); err != nil {
		return err
	}
	if err := s.holdRepo.Save(ctx, hold); err != nil {
		return fmt.Errorf("failed to save billing hold: %w", err)
	}

	if load.Status == fleet.LoadStatusBillingHold {
		if err := load.TransitionTo(fleet.LoadStatusDelivered); err == nil {
			if err := s.loadRepo.UpdateStatus(ctx, load); err != nil {
				s.logger.Warn("hold released but load status not updated",
					zap.String("load_number", load.LoadNumber), zap.Error(err))
			}
		}
	}

	s.logger.Info("billing hold released", zap.String("load_number", load.LoadNumber))
	return nil
}
