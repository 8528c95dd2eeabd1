package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

// McNumberService manages the MC numbers of a company
type McNumberService struct {
	mcRepo identity.McNumberRepository
	logger *zap.Logger
}

// NewMcNumberService creates a new McNumberService
func NewMcNumberService(mcRepo identity.McNumberRepository, logger *zap.Logger) *McNumberService {
	return &McNumberService{
		mcRepo: mcRepo,
		logger: logger,
	}
}

// ListMcNumbers returns the live MC numbers of the caller's company.
// Non-elevated callers see only their grant set.
func (s *McNumberService) ListMcNumbers(ctx context.Context, caller identity.CallerContext, filter shared.Filter) ([]identity.McNumber, error) {
	mcs, err := s.mcRepo.FindAllForCompany(ctx, caller.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list MC numbers: %w", err)
	}
	if caller.Elevated() {
		return mcs, nil
	}
	visible := make([]identity.McNumber, 0, len(mcs))
	for _, mc := range mcs {
		if caller.CanAccessMc(mc.ID) {
			visible = append(visible, mc)
		}
	}
	return visible, nil
}

// CreateMcNumber registers a new MC number for the company. The first MC
// number of a company becomes the default automatically.
func (s *McNumberService) CreateMcNumber(ctx context.Context, caller identity.CallerContext, number, companyName string, mcType identity.McNumberType) (*identity.McNumber, error) {
	if err := identity.Allow(caller, identity.CapManageMcNumbers); err != nil {
		return nil, err
	}

	mc, err := identity.NewMcNumber(caller.CompanyID, number, companyName, mcType)
	if err != nil {
		return nil, err
	}
	createdBy := caller.UserID
	mc.CreatedBy = &createdBy

	count, err := s.mcRepo.CountForCompany(ctx, caller.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count MC numbers: %w", err)
	}
	if count == 0 {
		mc.MarkDefault()
	}

	if err := s.mcRepo.Save(ctx, mc); err != nil {
		return nil, fmt.Errorf("failed to save MC number: %w", err)
	}

	s.logger.Info("MC number created",
		zap.String("mc_number", mc.Number),
		zap.Bool("default", mc.IsDefault))
	return mc, nil
}

// RenameMcNumber updates the operating company name shown on invoices
func (s *McNumberService) RenameMcNumber(ctx context.Context, caller identity.CallerContext, id uuid.UUID, companyName string) (*identity.McNumber, error) {
	if err := identity.Allow(caller, identity.CapManageMcNumbers); err != nil {
		return nil, err
	}

	mc, err := s.mcRepo.FindByIDForCompany(ctx, caller.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if err := mc.Rename(companyName); err != nil {
		return nil, err
	}
	if err := s.mcRepo.Save(ctx, mc); err != nil {
		return nil, fmt.Errorf("failed to save MC number: %w", err)
	}
	return mc, nil
}

// SetDefaultMcNumber swaps the company default to the given MC number
func (s *McNumberService) SetDefaultMcNumber(ctx context.Context, caller identity.CallerContext, id uuid.UUID) error {
	if err := identity.Allow(caller, identity.CapManageMcNumbers); err != nil {
		return err
	}
	if err := s.mcRepo.SetDefault(ctx, caller.CompanyID, id); err != nil {
		return err
	}
	s.logger.Info("default MC number changed", zap.String("mc_number_id", id.String()))
	return nil
}

// DeleteMcNumber soft-deletes an MC number. The default MC number cannot
// be deleted; another default must be chosen first. Historical loads and
// invoices keep resolving the deleted number.
func (s *McNumberService) DeleteMcNumber(ctx context.Context, caller identity.CallerContext, id uuid.UUID) error {
	if err := identity.Allow(caller, identity.CapManageMcNumbers); err != nil {
		return err
	}

	mc, err := s.mcRepo.FindByIDForCompany(ctx, caller.CompanyID, id)
	if err != nil {
		return err
	}
	if mc.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default MC number cannot be deleted")
	}

	now := time.Now()
	mc.DeletedAt = &now
	mc.UpdatedAt = now
	if err := s.mcRepo.Save(ctx, mc); err != nil {
		return fmt.Errorf("failed to delete MC number: %w", err)
	}

	s.logger.Info("MC number deleted", zap.String("mc_number", mc.Number))
	return nil
}
