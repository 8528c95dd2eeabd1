package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing/seqnum"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

// Mock implementations

type mockInvoiceRepository struct {
	mock.Mock
}

func (m *mockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) FindAllScoped(ctx context.Context, scope func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]billing.Invoice, int64, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]billing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *mockInvoiceRepository) FindByLoadIDs(ctx context.Context, companyID uuid.UUID, loadIDs []uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, companyID, loadIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) CreateForGroup(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *mockInvoiceRepository) ExistsByInvoiceNumber(ctx context.Context, companyID uuid.UUID, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, companyID, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

type mockInvoiceBatchRepository struct {
	mock.Mock
}

func (m *mockInvoiceBatchRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.InvoiceBatch, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.InvoiceBatch), args.Error(1)
}

func (m *mockInvoiceBatchRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.InvoiceBatch, int64, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]billing.InvoiceBatch), args.Get(1).(int64), args.Error(2)
}

func (m *mockInvoiceBatchRepository) BatchedInvoiceIDs(ctx context.Context, invoiceIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockInvoiceBatchRepository) Create(ctx context.Context, batch *billing.InvoiceBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *mockInvoiceBatchRepository) ExistsByBatchNumber(ctx context.Context, companyID uuid.UUID, batchNumber string) (bool, error) {
	args := m.Called(ctx, companyID, batchNumber)
	return args.Bool(0), args.Error(1)
}

type mockBillingHoldRepository struct {
	mock.Mock
}

func (m *mockBillingHoldRepository) FindActiveByLoadID(ctx context.Context, loadID uuid.UUID) (*billing.BillingHold, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingHold), args.Error(1)
}

func (m *mockBillingHoldRepository) ActiveHoldsByLoadIDs(ctx context.Context, loadIDs []uuid.UUID) (map[uuid.UUID]billing.BillingHold, error) {
	args := m.Called(ctx, loadIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]billing.BillingHold), args.Error(1)
}

func (m *mockBillingHoldRepository) Save(ctx context.Context, hold *billing.BillingHold) error {
	args := m.Called(ctx, hold)
	return args.Error(0)
}

type mockPODChecker struct {
	mock.Mock
}

func (m *mockPODChecker) HasPOD(ctx context.Context, loadID uuid.UUID) (bool, error) {
	args := m.Called(ctx, loadID)
	return args.Bool(0), args.Error(1)
}

type mockCustomerRepository struct {
	mock.Mock
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.Customer, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Customer), args.Error(1)
}

func (m *mockCustomerRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]billing.Customer, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]billing.Customer), args.Error(1)
}

func (m *mockCustomerRepository) Save(ctx context.Context, customer *billing.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type mockNumberGenerator struct {
	mock.Mock
}

func (m *mockNumberGenerator) Next(ctx context.Context, companyID uuid.UUID, prefix string, format seqnum.Format, exists billing.ExistsFunc) (string, error) {
	args := m.Called(ctx, companyID, prefix, format, exists)
	return args.String(0), args.Error(1)
}

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
