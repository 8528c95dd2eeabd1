package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence/mcscope"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/telemetry"
)

// FromLoadsRequest asks for a batch covering the given loads. Loads that
// are not yet invoiced are validated and invoiced first; loads invoiced
// earlier contribute their existing invoices.
type FromLoadsRequest struct {
	LoadIDs    []uuid.UUID
	McNumberID *uuid.UUID
	Notes      string
}

// FromLoadsResult is the outcome of a successful from-loads batch build
type FromLoadsResult struct {
	Batch             *billing.InvoiceBatch
	GeneratedInvoices int
	ExistingInvoices  int
}

// FromLoadsService orchestrates the load-to-batch pipeline: scope
// resolution, eligibility validation, invoice generation and batch
// assembly.
type FromLoadsService struct {
	loadRepo    fleet.LoadRepository
	invoiceRepo billing.InvoiceRepository
	validator   *EligibilityValidator
	generator   *InvoiceGenerator
	builder     *BatchBuilder
	logger      *zap.Logger
}

// NewFromLoadsService creates a new FromLoadsService
func NewFromLoadsService(
	loadRepo fleet.LoadRepository,
	invoiceRepo billing.InvoiceRepository,
	validator *EligibilityValidator,
	generator *InvoiceGenerator,
	builder *BatchBuilder,
	logger *zap.Logger,
) *FromLoadsService {
	return &FromLoadsService{
		loadRepo:    loadRepo,
		invoiceRepo: invoiceRepo,
		validator:   validator,
		generator:   generator,
		builder:     builder,
		logger:      logger,
	}
}

// CreateBatch builds a batch from the requested loads. selectedMc is the
// request-level MC selection, already parsed from the header or cookie.
//
// Error contract: shared.ErrNotFound when no requested load is visible,
// *ValidationFailedError with per-load reasons, INVOICE_GENERATION_FAILED
// when a group could not be persisted, shared.ErrNoInvoices and
// shared.ErrAllBatched from the batch builder.
func (s *FromLoadsService) CreateBatch(ctx context.Context, caller identity.CallerContext, selectedMc *uuid.UUID, req FromLoadsRequest) (*FromLoadsResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "from_loads", "create_batch")
	defer span.End()
	telemetry.SetAttribute(span, "requested_loads", len(req.LoadIDs))

	if err := identity.Allow(caller, identity.CapCreateBatch); err != nil {
		return nil, err
	}

	scope, err := mcscope.Resolve(caller, selectedMc)
	if err != nil {
		return nil, err
	}

	loads, err := s.loadRepo.FindByIDsScoped(ctx, req.LoadIDs, scope.ApplyToQuery())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to fetch loads: %w", err)
	}
	if len(loads) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No valid loads found")
	}

	// Loads already carrying an invoice contribute that invoice instead of
	// being validated and invoiced again.
	var needInvoicing, alreadyInvoiced []fleet.Load
	for _, load := range loads {
		if load.Status.AlreadyInvoiced() {
			alreadyInvoiced = append(alreadyInvoiced, load)
		} else {
			needInvoicing = append(needInvoicing, load)
		}
	}

	customers, err := s.customersFor(ctx, caller.CompanyID, needInvoicing)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	issues, err := s.validator.ValidateLoads(ctx, needInvoicing, customers)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(issues) > 0 {
		return nil, &ValidationFailedError{Issues: issues}
	}

	genResult, err := s.generator.GenerateForLoads(ctx, caller, needInvoicing)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(genResult.FailedGroups) > 0 {
		// Committed groups stay committed; the failed remainder is
		// reported so the caller can retry the request.
		first := genResult.FailedGroups[0]
		return nil, shared.NewDomainError("INVOICE_GENERATION_FAILED",
			fmt.Sprintf("Failed to generate invoice: %v", first.Err))
	}

	existingIDs, err := s.existingInvoiceIDs(ctx, caller.CompanyID, alreadyInvoiced)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	candidates := append(append([]uuid.UUID{}, genResult.InvoiceIDs...), existingIDs...)
	if len(candidates) == 0 {
		return nil, shared.ErrNoInvoices
	}

	batch, err := s.builder.Build(ctx, caller, candidates, req.McNumberID, req.Notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("batch created from loads",
		zap.String("batch_number", batch.BatchNumber),
		zap.Int("generated_invoices", len(genResult.InvoiceIDs)),
		zap.Int("existing_invoices", len(existingIDs)))

	return &FromLoadsResult{
		Batch:             batch,
		GeneratedInvoices: len(genResult.InvoiceIDs),
		ExistingInvoices:  len(existingIDs),
	}, nil
}

func (s *FromLoadsService) customersFor(ctx context.Context, companyID uuid.UUID, loads []fleet.Load) (map[uuid.UUID]billing.Customer, error) {
	if len(loads) == 0 {
		return map[uuid.UUID]billing.Customer{}, nil
	}
	ids := make([]uuid.UUID, 0, len(loads))
	seen := make(map[uuid.UUID]bool, len(loads))
	for _, l := range loads {
		if l.CustomerID != uuid.Nil && !seen[l.CustomerID] {
			seen[l.CustomerID] = true
			ids = append(ids, l.CustomerID)
		}
	}
	customers, err := s.generator.customerRepo.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return customers, nil
}

// existingInvoiceIDs reverse-looks-up the invoices covering loads that were
// invoiced before this request
func (s *FromLoadsService) existingInvoiceIDs(ctx context.Context, companyID uuid.UUID, loads []fleet.Load) ([]uuid.UUID, error) {
	if len(loads) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(loads))
	for i, l := range loads {
		ids[i] = l.ID
	}
	invoices, err := s.invoiceRepo.FindByLoadIDs(ctx, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve existing invoices: %w", err)
	}
	out := make([]uuid.UUID, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.ID
	}
	return out, nil
}
