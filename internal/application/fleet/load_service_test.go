package fleet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

// Mock implementations

type mockLoadRepository struct {
	mock.Mock
}

func (m *mockLoadRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Load), args.Error(1)
}

func (m *mockLoadRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*fleet.Load, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Load), args.Error(1)
}

func (m *mockLoadRepository) FindByIDsScoped(ctx context.Context, ids []uuid.UUID, scope func(*gorm.DB) *gorm.DB) ([]fleet.Load, error) {
	args := m.Called(ctx, ids, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Load), args.Error(1)
}

func (m *mockLoadRepository) FindAllScoped(ctx context.Context, scope func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]fleet.Load, int64, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]fleet.Load), args.Get(1).(int64), args.Error(2)
}

func (m *mockLoadRepository) Save(ctx context.Context, load *fleet.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *mockLoadRepository) UpdateStatus(ctx context.Context, load *fleet.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *mockLoadRepository) ExistsByLoadNumber(ctx context.Context, companyID uuid.UUID, loadNumber string) (bool, error) {
	args := m.Called(ctx, companyID, loadNumber)
	return args.Bool(0), args.Error(1)
}

type mockMcNumberRepository struct {
	mock.Mock
}

func (m *mockMcNumberRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.McNumber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.McNumber), args.Error(1)
}

func (m *mockMcNumberRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*identity.McNumber, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.McNumber), args.Error(1)
}

func (m *mockMcNumberRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]identity.McNumber, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.McNumber), args.Error(1)
}

func (m *mockMcNumberRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]identity.McNumber, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.McNumber), args.Error(1)
}

func (m *mockMcNumberRepository) FindDefaultForCompany(ctx context.Context, companyID uuid.UUID) (*identity.McNumber, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.McNumber), args.Error(1)
}

func (m *mockMcNumberRepository) Save(ctx context.Context, mc *identity.McNumber) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *mockMcNumberRepository) SetDefault(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *mockMcNumberRepository) CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func dispatcherCaller(companyID uuid.UUID) identity.CallerContext {
	return identity.CallerContext{
		UserID:    uuid.New(),
		CompanyID: companyID,
		Role:      identity.RoleDispatcher,
	}
}

func liveMcNumber(t *testing.T, companyID uuid.UUID) *identity.McNumber {
	t.Helper()
	mc, err := identity.NewMcNumber(companyID, "MC-111222", "Test Carrier LLC", identity.McTypeCarrier)
	require.NoError(t, err)
	return mc
}

func TestLoadService_CreateLoad(t *testing.T) {
	companyID := uuid.New()
	caller := dispatcherCaller(companyID)

	t.Run("creates a load under an accessible MC number", func(t *testing.T) {
		mc := liveMcNumber(t, companyID)
		req := CreateLoadRequest{
			LoadNumber: "L-5001",
			McNumberID: mc.ID,
			CustomerID: uuid.New(),
			Revenue:    decimal.NewFromInt(1800),
			DriverPay:  decimal.NewFromInt(1800),
			Weight:     decimal.NewFromInt(38000),
		}

		loadRepo := new(mockLoadRepository)
		mcRepo := new(mockMcNumberRepository)
		mcRepo.On("FindByIDForCompany", mock.Anything, companyID, mc.ID).Return(mc, nil)
		loadRepo.On("ExistsByLoadNumber", mock.Anything, companyID, "L-5001").Return(false, nil)
		loadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		service := NewLoadService(loadRepo, mcRepo, zap.NewNop())
		load, err := service.CreateLoad(context.Background(), caller, req)

		require.NoError(t, err)
		assert.Equal(t, "L-5001", load.LoadNumber)
		assert.Equal(t, fleet.LoadStatusPending, load.Status)
		assert.True(t, load.Revenue.Equal(decimal.NewFromInt(1800)))
		require.NotNil(t, load.CreatedBy)
		assert.Equal(t, caller.UserID, *load.CreatedBy)
		loadRepo.AssertExpectations(t)
	})

	t.Run("duplicate load number is rejected", func(t *testing.T) {
		mc := liveMcNumber(t, companyID)

		loadRepo := new(mockLoadRepository)
		mcRepo := new(mockMcNumberRepository)
		mcRepo.On("FindByIDForCompany", mock.Anything, companyID, mc.ID).Return(mc, nil)
		loadRepo.On("ExistsByLoadNumber", mock.Anything, companyID, "L-5002").Return(true, nil)

		service := NewLoadService(loadRepo, mcRepo, zap.NewNop())
		_, err := service.CreateLoad(context.Background(), caller, CreateLoadRequest{
			LoadNumber: "L-5002",
			McNumberID: mc.ID,
			CustomerID: uuid.New(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		loadRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("MC number outside the grant set is forbidden", func(t *testing.T) {
		restricted := identity.CallerContext{
			UserID:    uuid.New(),
			CompanyID: companyID,
			Role:      identity.RoleDispatcher,
			McAccess:  []uuid.UUID{uuid.New()},
		}

		service := NewLoadService(new(mockLoadRepository), new(mockMcNumberRepository), zap.NewNop())
		_, err := service.CreateLoad(context.Background(), restricted, CreateLoadRequest{
			LoadNumber: "L-5003",
			McNumberID: uuid.New(),
			CustomerID: uuid.New(),
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("soft-deleted MC number takes no new loads", func(t *testing.T) {
		mcID := uuid.New()

		loadRepo := new(mockLoadRepository)
		mcRepo := new(mockMcNumberRepository)
		mcRepo.On("FindByIDForCompany", mock.Anything, companyID, mcID).Return(nil, shared.ErrNotFound)

		service := NewLoadService(loadRepo, mcRepo, zap.NewNop())
		_, err := service.CreateLoad(context.Background(), caller, CreateLoadRequest{
			LoadNumber: "L-5004",
			McNumberID: mcID,
			CustomerID: uuid.New(),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		loadRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLoadService_UpdateStatus(t *testing.T) {
	companyID := uuid.New()
	caller := dispatcherCaller(companyID)

	newLoad := func(t *testing.T, status fleet.LoadStatus) *fleet.Load {
		t.Helper()
		load, err := fleet.NewLoad(companyID, "L-6001", uuid.New(), uuid.New())
		require.NoError(t, err)
		load.Status = status
		return load
	}

	t.Run("advances the load one lifecycle step", func(t *testing.T) {
		load := newLoad(t, fleet.LoadStatusAtDelivery)

		loadRepo := new(mockLoadRepository)
		loadRepo.On("FindByIDForCompany", mock.Anything, companyID, load.ID).Return(load, nil)
		loadRepo.On("UpdateStatus", mock.Anything, load).Return(nil)

		service := NewLoadService(loadRepo, new(mockMcNumberRepository), zap.NewNop())
		updated, err := service.UpdateStatus(context.Background(), caller, load.ID, fleet.LoadStatusDelivered, "")

		require.NoError(t, err)
		assert.Equal(t, fleet.LoadStatusDelivered, updated.Status)
		assert.NotNil(t, updated.DeliveredAt)
	})

	t.Run("skipping lifecycle steps is rejected", func(t *testing.T) {
		load := newLoad(t, fleet.LoadStatusPending)

		loadRepo := new(mockLoadRepository)
		loadRepo.On("FindByIDForCompany", mock.Anything, companyID, load.ID).Return(load, nil)

		service := NewLoadService(loadRepo, new(mockMcNumberRepository), zap.NewNop())
		_, err := service.UpdateStatus(context.Background(), caller, load.ID, fleet.LoadStatusDelivered, "")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		loadRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("cancellation records the reason", func(t *testing.T) {
		load := newLoad(t, fleet.LoadStatusAssigned)

		loadRepo := new(mockLoadRepository)
		loadRepo.On("FindByIDForCompany", mock.Anything, companyID, load.ID).Return(load, nil)
		loadRepo.On("UpdateStatus", mock.Anything, load).Return(nil)

		service := NewLoadService(loadRepo, new(mockMcNumberRepository), zap.NewNop())
		updated, err := service.UpdateStatus(context.Background(), caller, load.ID, fleet.LoadStatusCancelled, "shipper cancelled")

		require.NoError(t, err)
		assert.Equal(t, fleet.LoadStatusCancelled, updated.Status)
		assert.Equal(t, "shipper cancelled", updated.CancelReason)
		assert.NotNil(t, updated.CancelledAt)
	})

	t.Run("accounting role may not move loads", func(t *testing.T) {
		accounting := identity.CallerContext{UserID: uuid.New(), CompanyID: companyID, Role: identity.RoleAccounting}

		service := NewLoadService(new(mockLoadRepository), new(mockMcNumberRepository), zap.NewNop())
		_, err := service.UpdateStatus(context.Background(), accounting, uuid.New(), fleet.LoadStatusDelivered, "")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestLoadService_Queries(t *testing.T) {
	companyID := uuid.New()
	caller := dispatcherCaller(companyID)

	t.Run("ListLoads passes scope and filter through", func(t *testing.T) {
		load, err := fleet.NewLoad(companyID, "L-7001", uuid.New(), uuid.New())
		require.NoError(t, err)

		loadRepo := new(mockLoadRepository)
		loadRepo.On("FindAllScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{*load}, int64(1), nil)

		service := NewLoadService(loadRepo, new(mockMcNumberRepository), zap.NewNop())
		loads, total, err := service.ListLoads(context.Background(), caller, nil, shared.Filter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, loads, 1)
	})

	t.Run("GetLoad hides loads outside the grant set", func(t *testing.T) {
		load, err := fleet.NewLoad(companyID, "L-7002", uuid.New(), uuid.New())
		require.NoError(t, err)
		restricted := identity.CallerContext{
			UserID:    uuid.New(),
			CompanyID: companyID,
			Role:      identity.RoleDispatcher,
			McAccess:  []uuid.UUID{uuid.New()},
		}

		loadRepo := new(mockLoadRepository)
		loadRepo.On("FindByIDForCompany", mock.Anything, companyID, load.ID).Return(load, nil)

		service := NewLoadService(loadRepo, new(mockMcNumberRepository), zap.NewNop())
		_, err = service.GetLoad(context.Background(), restricted, nil, load.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
