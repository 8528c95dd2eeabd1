package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/mcscope"
)

// InvoiceView is an invoice with its MC number resolved to the display
// string. Invoices store the relational MC id; the human-readable number
// is denormalized only at read time.
type InvoiceView struct {
	billing.Invoice
	McNumber string
}

// BatchView is a batch with its MC number resolved to the display string
type BatchView struct {
	billing.InvoiceBatch
	McNumber string
}

// QueryService serves invoice and batch reads under MC scoping
type QueryService struct {
	invoiceRepo billing.InvoiceRepository
	batchRepo   billing.InvoiceBatchRepository
	mcRepo      identity.McNumberRepository
	logger      *zap.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	invoiceRepo billing.InvoiceRepository,
	batchRepo billing.InvoiceBatchRepository,
	mcRepo identity.McNumberRepository,
	logger *zap.Logger,
) *QueryService {
	return &QueryService{
		invoiceRepo: invoiceRepo,
		batchRepo:   batchRepo,
		mcRepo:      mcRepo,
		logger:      logger,
	}
}

// ListInvoices returns the invoices visible to the caller
func (s *QueryService) ListInvoices(ctx context.Context, caller identity.CallerContext, selectedMc *uuid.UUID, filter shared.Filter) ([]InvoiceView, int64, error) {
	if err := identity.Allow(caller, identity.CapViewFinancials); err != nil {
		return nil, 0, err
	}
	scope, err := mcscope.Resolve(caller, selectedMc)
	if err != nil {
		return nil, 0, err
	}

	invoices, total, err := s.invoiceRepo.FindAllScoped(ctx, scope.ApplyToQuery(), filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	mcIDs := make([]uuid.UUID, 0, len(invoices))
	for _, inv := range invoices {
		mcIDs = append(mcIDs, inv.McNumberID)
	}
	numbers, err := s.mcDisplayNumbers(ctx, caller.CompanyID, mcIDs)
	if err != nil {
		return nil, 0, err
	}

	views := make([]InvoiceView, len(invoices))
	for i, inv := range invoices {
		views[i] = InvoiceView{Invoice: inv, McNumber: numbers[inv.McNumberID]}
	}
	return views, total, nil
}

// GetInvoice returns one invoice if it falls inside the caller's scope
func (s *QueryService) GetInvoice(ctx context.Context, caller identity.CallerContext, selectedMc *uuid.UUID, id uuid.UUID) (*InvoiceView, error) {
	if err := identity.Allow(caller, identity.CapViewFinancials); err != nil {
		return nil, err
	}
	scope, err := mcscope.Resolve(caller, selectedMc)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != caller.CompanyID || !scope.AllowsMc(invoice.McNumberID) {
		// Out-of-scope reads are indistinguishable from missing rows
		return nil, shared.ErrNotFound
	}

	numbers, err := s.mcDisplayNumbers(ctx, caller.CompanyID, []uuid.UUID{invoice.McNumberID})
	if err != nil {
		return nil, err
	}
	return &InvoiceView{Invoice: *invoice, McNumber: numbers[invoice.McNumberID]}, nil
}

// ListBatches returns the company's batches. Batches are company-scoped
// rather than MC-scoped: they may span invoices of several MC numbers.
func (s *QueryService) ListBatches(ctx context.Context, caller identity.CallerContext, filter shared.Filter) ([]BatchView, int64, error) {
	if err := identity.Allow(caller, identity.CapViewFinancials); err != nil {
		return nil, 0, err
	}

	batches, total, err := s.batchRepo.FindAllForCompany(ctx, caller.CompanyID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list batches: %w", err)
	}

	mcIDs := make([]uuid.UUID, 0, len(batches))
	for _, b := range batches {
		if b.McNumberID != nil {
			mcIDs = append(mcIDs, *b.McNumberID)
		}
	}
	numbers, err := s.mcDisplayNumbers(ctx, caller.CompanyID, mcIDs)
	if err != nil {
		return nil, 0, err
	}

	views := make([]BatchView, len(batches))
	for i, b := range batches {
		view := BatchView{InvoiceBatch: b}
		if b.McNumberID != nil {
			view.McNumber = numbers[*b.McNumberID]
		}
		views[i] = view
	}
	return views, total, nil
}

// GetBatch returns one batch with its items
func (s *QueryService) GetBatch(ctx context.Context, caller identity.CallerContext, id uuid.UUID) (*BatchView, error) {
	if err := identity.Allow(caller, identity.CapViewFinancials); err != nil {
		return nil, err
	}

	batch, err := s.batchRepo.FindByID(ctx, caller.CompanyID, id)
	if err != nil {
		return nil, err
	}

	view := &BatchView{InvoiceBatch: *batch}
	if batch.McNumberID != nil {
		numbers, err := s.mcDisplayNumbers(ctx, caller.CompanyID, []uuid.UUID{*batch.McNumberID})
		if err != nil {
			return nil, err
		}
		view.McNumber = numbers[*batch.McNumberID]
	}
	return view, nil
}

// mcDisplayNumbers resolves MC ids to display numbers, including
// soft-deleted MC numbers so historical documents stay readable
func (s *QueryService) mcDisplayNumbers(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	mcs, err := s.mcRepo.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve MC numbers: %w", err)
	}
	numbers := make(map[uuid.UUID]string, len(mcs))
	for _, mc := range mcs {
		numbers[mc.ID] = mc.Number
	}
	return numbers, nil
}
