package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

// fromLoadsFixture wires a FromLoadsService over mocked repositories with
// real validator, generator and builder stages.
type fromLoadsFixture struct {
	loadRepo     *mockLoadRepository
	invoiceRepo  *mockInvoiceRepository
	batchRepo    *mockInvoiceBatchRepository
	holdRepo     *mockBillingHoldRepository
	podChecker   *mockPODChecker
	customerRepo *mockCustomerRepository
	numberGen    *mockNumberGenerator
	service      *FromLoadsService
}

func newFromLoadsFixture() *fromLoadsFixture {
	f := &fromLoadsFixture{
		loadRepo:     new(mockLoadRepository),
		invoiceRepo:  new(mockInvoiceRepository),
		batchRepo:    new(mockInvoiceBatchRepository),
		holdRepo:     new(mockBillingHoldRepository),
		podChecker:   new(mockPODChecker),
		customerRepo: new(mockCustomerRepository),
		numberGen:    new(mockNumberGenerator),
	}
	logger := zap.NewNop()
	validator := NewEligibilityValidator(f.holdRepo, f.podChecker, logger)
	generator := NewInvoiceGenerator(f.invoiceRepo, f.customerRepo, f.numberGen, logger, "INV", 30)
	builder := NewBatchBuilder(f.invoiceRepo, f.batchRepo, f.numberGen, logger, "BATCH")
	f.service = NewFromLoadsService(f.loadRepo, f.invoiceRepo, validator, generator, builder, logger)
	return f
}

func TestFromLoadsService_CreateBatch(t *testing.T) {
	companyID := uuid.New()
	mcID := uuid.New()
	caller := accountingCaller(companyID)

	t.Run("drivers may not create batches", func(t *testing.T) {
		f := newFromLoadsFixture()
		driver := identity.CallerContext{UserID: uuid.New(), CompanyID: companyID, Role: identity.RoleDriver}

		_, err := f.service.CreateBatch(context.Background(), driver, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{uuid.New()}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		f.loadRepo.AssertNotCalled(t, "FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no visible loads is NOT_FOUND", func(t *testing.T) {
		f := newFromLoadsFixture()
		f.loadRepo.On("FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{}, nil)

		_, err := f.service.CreateBatch(context.Background(), caller, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{uuid.New()}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, "No valid loads found", domainErr.Message)
	})

	t.Run("validation issues abort before any invoice is written", func(t *testing.T) {
		f := newFromLoadsFixture()
		load := groupLoad(t, companyID, mcID, uuid.New(), "L-3001", 1000)
		load.Revenue = decimal.Zero

		f.loadRepo.On("FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{load}, nil)
		f.customerRepo.On("FindByIDs", mock.Anything, companyID, mock.Anything).
			Return(map[uuid.UUID]billing.Customer{}, nil)
		f.holdRepo.On("ActiveHoldsByLoadIDs", mock.Anything, mock.Anything).
			Return(map[uuid.UUID]billing.BillingHold{}, nil)

		_, err := f.service.CreateBatch(context.Background(), caller, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{load.ID}})

		var failed *ValidationFailedError
		require.ErrorAs(t, err, &failed)
		require.Len(t, failed.Issues, 1)
		assert.Equal(t, "L-3001", failed.Issues[0].LoadNumber)
		f.invoiceRepo.AssertNotCalled(t, "CreateForGroup", mock.Anything, mock.Anything)
	})

	t.Run("generates invoices and batches them with existing ones", func(t *testing.T) {
		f := newFromLoadsFixture()
		customerID := uuid.New()
		fresh := groupLoad(t, companyID, mcID, customerID, "L-3010", 1500)
		invoiced := groupLoad(t, companyID, mcID, customerID, "L-3011", 2000)
		invoiced.Status = fleet.LoadStatusInvoiced

		existingInv := testInvoice(t, companyID, customerID, mcID, "INV-2026-050", 2000)

		f.loadRepo.On("FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{fresh, invoiced}, nil)
		f.customerRepo.On("FindByIDs", mock.Anything, companyID, mock.Anything).
			Return(map[uuid.UUID]billing.Customer{}, nil)
		f.holdRepo.On("ActiveHoldsByLoadIDs", mock.Anything, []uuid.UUID{fresh.ID}).
			Return(map[uuid.UUID]billing.BillingHold{}, nil)
		f.podChecker.On("HasPOD", mock.Anything, fresh.ID).Return(true, nil)

		f.numberGen.On("Next", mock.Anything, companyID, "INV", mock.Anything, mock.Anything).
			Return("INV-2026-051", nil)
		var generated *billing.Invoice
		f.invoiceRepo.On("CreateForGroup", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				generated = args.Get(1).(*billing.Invoice)
			}).Return(nil)

		f.invoiceRepo.On("FindByLoadIDs", mock.Anything, companyID, []uuid.UUID{invoiced.ID}).
			Return([]billing.Invoice{existingInv}, nil)

		f.batchRepo.On("BatchedInvoiceIDs", mock.Anything, mock.Anything).Return([]uuid.UUID{}, nil)
		f.invoiceRepo.On("FindByIDs", mock.Anything, companyID, mock.MatchedBy(func(ids []uuid.UUID) bool {
			return len(ids) == 2
		})).Return([]billing.Invoice{existingInv}, nil).
			Run(func(args mock.Arguments) {
				ids := args.Get(2).([]uuid.UUID)
				assert.Equal(t, generated.ID, ids[0])
				assert.Equal(t, existingInv.ID, ids[1])
			})
		f.numberGen.On("Next", mock.Anything, companyID, "BATCH", mock.Anything, mock.Anything).
			Return("BATCH-2026-W36-010", nil)
		f.batchRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.CreateBatch(context.Background(), caller, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{fresh.ID, invoiced.ID}})

		require.NoError(t, err)
		assert.Equal(t, 1, result.GeneratedInvoices)
		assert.Equal(t, 1, result.ExistingInvoices)
		assert.Equal(t, "BATCH-2026-W36-010", result.Batch.BatchNumber)
		f.invoiceRepo.AssertExpectations(t)
	})

	t.Run("failed invoice group is INVOICE_GENERATION_FAILED", func(t *testing.T) {
		f := newFromLoadsFixture()
		load := groupLoad(t, companyID, mcID, uuid.New(), "L-3020", 1500)

		f.loadRepo.On("FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{load}, nil)
		f.customerRepo.On("FindByIDs", mock.Anything, companyID, mock.Anything).
			Return(map[uuid.UUID]billing.Customer{}, nil)
		f.holdRepo.On("ActiveHoldsByLoadIDs", mock.Anything, mock.Anything).
			Return(map[uuid.UUID]billing.BillingHold{}, nil)
		f.podChecker.On("HasPOD", mock.Anything, load.ID).Return(true, nil)
		f.numberGen.On("Next", mock.Anything, companyID, "INV", mock.Anything, mock.Anything).
			Return("INV-2026-060", nil)
		f.invoiceRepo.On("CreateForGroup", mock.Anything, mock.Anything).
			Return(shared.ErrConcurrencyConflict)

		_, err := f.service.CreateBatch(context.Background(), caller, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{load.ID}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVOICE_GENERATION_FAILED", domainErr.Code)
		f.batchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("already batched invoices surface ALL_BATCHED", func(t *testing.T) {
		f := newFromLoadsFixture()
		customerID := uuid.New()
		invoiced := groupLoad(t, companyID, mcID, customerID, "L-3030", 2000)
		invoiced.Status = fleet.LoadStatusInvoiced
		existingInv := testInvoice(t, companyID, customerID, mcID, "INV-2026-070", 2000)

		f.loadRepo.On("FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{invoiced}, nil)
		f.customerRepo.On("FindByIDs", mock.Anything, companyID, mock.Anything).
			Return(map[uuid.UUID]billing.Customer{}, nil)
		f.holdRepo.On("ActiveHoldsByLoadIDs", mock.Anything, mock.Anything).
			Return(map[uuid.UUID]billing.BillingHold{}, nil)
		f.invoiceRepo.On("FindByLoadIDs", mock.Anything, companyID, []uuid.UUID{invoiced.ID}).
			Return([]billing.Invoice{existingInv}, nil)
		f.batchRepo.On("BatchedInvoiceIDs", mock.Anything, []uuid.UUID{existingInv.ID}).
			Return([]uuid.UUID{existingInv.ID}, nil)

		_, err := f.service.CreateBatch(context.Background(), caller, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{invoiced.ID}})

		assert.ErrorIs(t, err, shared.ErrAllBatched)
	})

	t.Run("invoiced loads without resolvable invoices are NO_INVOICES", func(t *testing.T) {
		f := newFromLoadsFixture()
		invoiced := groupLoad(t, companyID, mcID, uuid.New(), "L-3040", 2000)
		invoiced.Status = fleet.LoadStatusInvoiced

		f.loadRepo.On("FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{invoiced}, nil)
		f.customerRepo.On("FindByIDs", mock.Anything, companyID, mock.Anything).
			Return(map[uuid.UUID]billing.Customer{}, nil)
		f.holdRepo.On("ActiveHoldsByLoadIDs", mock.Anything, mock.Anything).
			Return(map[uuid.UUID]billing.BillingHold{}, nil)
		f.invoiceRepo.On("FindByLoadIDs", mock.Anything, companyID, mock.Anything).
			Return([]billing.Invoice{}, nil)

		_, err := f.service.CreateBatch(context.Background(), caller, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{invoiced.ID}})

		assert.ErrorIs(t, err, shared.ErrNoInvoices)
	})

	t.Run("dispatcher restricted to a foreign MC sees no loads", func(t *testing.T) {
		f := newFromLoadsFixture()
		restricted := identity.CallerContext{
			UserID:    uuid.New(),
			CompanyID: companyID,
			Role:      identity.RoleAccounting,
			McAccess:  []uuid.UUID{uuid.New()},
		}
		// The scope predicate does the filtering; the repository returns
		// nothing for loads on MC numbers outside the grant set.
		f.loadRepo.On("FindByIDsScoped", mock.Anything, mock.Anything, mock.Anything).
			Return([]fleet.Load{}, nil)

		_, err := f.service.CreateBatch(context.Background(), restricted, nil,
			FromLoadsRequest{LoadIDs: []uuid.UUID{uuid.New()}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}
