package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing/seqnum"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/telemetry"
)

// invoiceGroup keys one invoice: loads for different customers or different
// MC numbers never share an invoice.
type invoiceGroup struct {
	CustomerID uuid.UUID
	McNumberID uuid.UUID
}

// GroupFailure reports one load group whose invoice could not be persisted
type GroupFailure struct {
	CustomerID uuid.UUID
	McNumberID uuid.UUID
	Err        error
}

// GenerateResult reports the outcome of an invoice generation run. Groups
// are persisted independently: committed invoices stay even when a later
// group fails.
type GenerateResult struct {
	InvoiceIDs   []uuid.UUID
	FailedGroups []GroupFailure
}

// InvoiceGenerator turns eligible loads into invoices, one per
// (customer, MC number) group.
type InvoiceGenerator struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo billing.CustomerRepository
	numberGen    billing.NumberGenerator
	logger       *zap.Logger

	invoicePrefix string
	defaultTerms  int
}

// NewInvoiceGenerator creates a new InvoiceGenerator. invoicePrefix and
// defaultTerms come from the billing configuration.
func NewInvoiceGenerator(
	invoiceRepo billing.InvoiceRepository,
	customerRepo billing.CustomerRepository,
	numberGen billing.NumberGenerator,
	logger *zap.Logger,
	invoicePrefix string,
	defaultTerms int,
) *InvoiceGenerator {
	if invoicePrefix == "" {
		invoicePrefix = "INV"
	}
	if defaultTerms <= 0 {
		defaultTerms = 30
	}
	return &InvoiceGenerator{
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		numberGen:     numberGen,
		logger:        logger,
		invoicePrefix: invoicePrefix,
		defaultTerms:  defaultTerms,
	}
}

// GenerateForLoads groups the loads by (customer, MC number) and persists
// one invoice per group. Loads are expected to have passed eligibility
// validation; the repository still re-verifies each group inside its
// transaction.
func (g *InvoiceGenerator) GenerateForLoads(ctx context.Context, caller identity.CallerContext, loads []fleet.Load) (*GenerateResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice_generator", "generate_for_loads")
	defer span.End()
	telemetry.SetAttribute(span, "load_count", len(loads))

	result := &GenerateResult{}
	if len(loads) == 0 {
		return result, nil
	}

	groups, order := groupLoads(loads)

	customerIDs := make([]uuid.UUID, 0, len(order))
	seen := make(map[uuid.UUID]bool, len(order))
	for _, key := range order {
		if !seen[key.CustomerID] {
			seen[key.CustomerID] = true
			customerIDs = append(customerIDs, key.CustomerID)
		}
	}
	customers, err := g.customerRepo.FindByIDs(ctx, caller.CompanyID, customerIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	for _, key := range order {
		invoiceID, err := g.generateGroup(ctx, caller, key, groups[key], customers)
		if err != nil {
			g.logger.Error("invoice group failed",
				zap.String("customer_id", key.CustomerID.String()),
				zap.String("mc_number_id", key.McNumberID.String()),
				zap.Error(err))
			result.FailedGroups = append(result.FailedGroups, GroupFailure{
				CustomerID: key.CustomerID,
				McNumberID: key.McNumberID,
				Err:        err,
			})
			continue
		}
		result.InvoiceIDs = append(result.InvoiceIDs, invoiceID)
	}

	telemetry.SetAttribute(span, "generated", len(result.InvoiceIDs))
	telemetry.SetAttribute(span, "failed_groups", len(result.FailedGroups))
	return result, nil
}

func (g *InvoiceGenerator) generateGroup(
	ctx context.Context,
	caller identity.CallerContext,
	key invoiceGroup,
	loads []fleet.Load,
	customers map[uuid.UUID]billing.Customer,
) (uuid.UUID, error) {
	number, err := g.numberGen.Next(ctx, caller.CompanyID, g.invoicePrefix, seqnum.FormatYearly,
		func(c context.Context, n string) (bool, error) {
			return g.invoiceRepo.ExistsByInvoiceNumber(c, caller.CompanyID, n)
		})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	terms := g.defaultTerms
	if customer, ok := customers[key.CustomerID]; ok && customer.PaymentTerms > 0 {
		terms = customer.PaymentTerms
	}
	dueDate := time.Now().AddDate(0, 0, terms)

	loadIDs := make([]uuid.UUID, len(loads))
	total := decimal.Zero
	for i, l := range loads {
		loadIDs[i] = l.ID
		total = total.Add(l.Revenue)
	}

	invoice, err := billing.NewInvoice(caller.CompanyID, number, key.CustomerID, key.McNumberID, loadIDs, total, dueDate)
	if err != nil {
		return uuid.Nil, err
	}
	createdBy := caller.UserID
	invoice.CreatedBy = &createdBy

	if err := g.invoiceRepo.CreateForGroup(ctx, invoice); err != nil {
		return uuid.Nil, err
	}

	g.logger.Info("invoice generated",
		zap.String("invoice_number", number),
		zap.String("customer_id", key.CustomerID.String()),
		zap.Int("loads", len(loadIDs)),
		zap.String("total", total.StringFixed(2)))
	return invoice.ID, nil
}

// groupLoads buckets loads by invoice group, keeping first-seen group order
// so generation is deterministic for a given input order.
func groupLoads(loads []fleet.Load) (map[invoiceGroup][]fleet.Load, []invoiceGroup) {
	groups := make(map[invoiceGroup][]fleet.Load)
	var order []invoiceGroup
	for _, load := range loads {
		key := invoiceGroup{CustomerID: load.CustomerID, McNumberID: load.McNumberID}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], load)
	}
	return groups, order
}
