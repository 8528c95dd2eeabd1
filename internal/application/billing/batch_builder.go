package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing/seqnum"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/telemetry"
)

// BatchBuilder assembles invoice batches. An invoice belongs to at most one
// batch ever; candidates already claimed by an earlier batch are silently
// dropped, and the builder distinguishes "nothing to batch" from "everything
// already batched".
type BatchBuilder struct {
	invoiceRepo billing.InvoiceRepository
	batchRepo   billing.InvoiceBatchRepository
	numberGen   billing.NumberGenerator
	logger      *zap.Logger

	batchPrefix string
}

// NewBatchBuilder creates a new BatchBuilder. batchPrefix comes from the
// billing configuration.
func NewBatchBuilder(
	invoiceRepo billing.InvoiceRepository,
	batchRepo billing.InvoiceBatchRepository,
	numberGen billing.NumberGenerator,
	logger *zap.Logger,
	batchPrefix string,
) *BatchBuilder {
	if batchPrefix == "" {
		batchPrefix = "BATCH"
	}
	return &BatchBuilder{
		invoiceRepo: invoiceRepo,
		batchRepo:   batchRepo,
		numberGen:   numberGen,
		logger:      logger,
		batchPrefix: batchPrefix,
	}
}

// Build creates a batch over the given candidate invoices. mcNumberID
// optionally pins the batch to one MC number; otherwise the first member
// invoice's MC number is used.
//
// Returns shared.ErrNoInvoices when no candidates resolve to invoices and
// shared.ErrAllBatched when every candidate already belongs to a batch.
func (b *BatchBuilder) Build(ctx context.Context, caller identity.CallerContext, invoiceIDs []uuid.UUID, mcNumberID *uuid.UUID, notes string) (*billing.InvoiceBatch, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "batch_builder", "build")
	defer span.End()
	telemetry.SetAttribute(span, "candidates", len(invoiceIDs))

	candidates := dedupIDs(invoiceIDs)
	if len(candidates) == 0 {
		return nil, shared.ErrNoInvoices
	}

	batched, err := b.batchRepo.BatchedInvoiceIDs(ctx, candidates)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check batch membership: %w", err)
	}
	taken := make(map[uuid.UUID]bool, len(batched))
	for _, id := range batched {
		taken[id] = true
	}

	surviving := make([]uuid.UUID, 0, len(candidates))
	for _, id := range candidates {
		if !taken[id] {
			surviving = append(surviving, id)
		}
	}
	if len(surviving) == 0 {
		return nil, shared.ErrAllBatched
	}

	invoices, err := b.invoiceRepo.FindByIDs(ctx, caller.CompanyID, surviving)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	if len(invoices) == 0 {
		return nil, shared.ErrNoInvoices
	}

	number, err := b.numberGen.Next(ctx, caller.CompanyID, b.batchPrefix, seqnum.FormatWeekly,
		func(c context.Context, n string) (bool, error) {
			return b.batchRepo.ExistsByBatchNumber(c, caller.CompanyID, n)
		})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to allocate batch number: %w", err)
	}

	batch, err := billing.NewInvoiceBatch(caller.CompanyID, caller.UserID, number, invoices, mcNumberID, notes)
	if err != nil {
		return nil, err
	}
	if err := b.batchRepo.Create(ctx, batch); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	b.logger.Info("invoice batch created",
		zap.String("batch_number", number),
		zap.Int("invoices", batch.InvoiceCount()),
		zap.String("total", batch.TotalAmount.StringFixed(2)))
	return batch, nil
}

// dedupIDs removes duplicates preserving first-seen order
func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
