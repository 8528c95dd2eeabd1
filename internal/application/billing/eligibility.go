package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/billing"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/fleet"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/telemetry"
)

// LoadValidationIssue names one load that cannot be invoiced and why
type LoadValidationIssue struct {
	LoadNumber string `json:"loadNumber"`
	Reason     string `json:"reason"`
}

// ValidationFailedError aggregates the per-load issues of a rejected
// invoicing request. Every failing load is reported, not just the first.
type ValidationFailedError struct {
	Issues []LoadValidationIssue
}

// Error implements the error interface
func (e *ValidationFailedError) Error() string {
	return "Some loads have issues that must be resolved"
}

// EligibilityValidator runs the ordered billing eligibility checks over a
// set of loads. Checks short-circuit per load: a load failing accounting
// completeness is not also reported for a missing POD. Issues are
// accumulated and returned as data; the validator itself only errors on
// infrastructure failures.
type EligibilityValidator struct {
	holdRepo   billing.BillingHoldRepository
	podChecker billing.PODChecker
	logger     *zap.Logger
}

// NewEligibilityValidator creates a new EligibilityValidator
func NewEligibilityValidator(holdRepo billing.BillingHoldRepository, podChecker billing.PODChecker, logger *zap.Logger) *EligibilityValidator {
	return &EligibilityValidator{
		holdRepo:   holdRepo,
		podChecker: podChecker,
		logger:     logger,
	}
}

// ValidateLoads checks each load in order: delivery status, accounting
// completeness, active billing hold, ready-to-bill. The customers map
// supplies the customer record per load for the brokerage rate-split rule.
func (v *EligibilityValidator) ValidateLoads(ctx context.Context, loads []fleet.Load, customers map[uuid.UUID]billing.Customer) ([]LoadValidationIssue, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "eligibility", "validate_loads")
	defer span.End()
	telemetry.SetAttribute(span, "load_count", len(loads))

	loadIDs := make([]uuid.UUID, len(loads))
	for i, l := range loads {
		loadIDs[i] = l.ID
	}
	holds, err := v.holdRepo.ActiveHoldsByLoadIDs(ctx, loadIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to look up billing holds: %w", err)
	}

	var issues []LoadValidationIssue
	for _, load := range loads {
		if !load.Status.InvoicingCandidate() {
			issues = append(issues, LoadValidationIssue{
				LoadNumber: load.LoadNumber,
				Reason:     fmt.Sprintf("Load is not delivered yet (status %s)", load.Status),
			})
			continue
		}

		if reasons := accountingIssues(load); len(reasons) > 0 {
			issues = append(issues, LoadValidationIssue{
				LoadNumber: load.LoadNumber,
				Reason:     strings.Join(reasons, "; "),
			})
			continue
		}

		if hold, held := holds[load.ID]; held {
			issues = append(issues, LoadValidationIssue{
				LoadNumber: load.LoadNumber,
				Reason:     "Billing hold: " + hold.Reason,
			})
			continue
		}

		customer, known := customers[load.CustomerID]
		reasons, err := v.readyToBillIssues(ctx, load, customer, known)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if len(reasons) > 0 {
			issues = append(issues, LoadValidationIssue{
				LoadNumber: load.LoadNumber,
				Reason:     strings.Join(reasons, "; "),
			})
		}
	}

	if len(issues) > 0 {
		v.logger.Info("loads rejected for invoicing",
			zap.Int("checked", len(loads)),
			zap.Int("rejected", len(issues)))
	}
	return issues, nil
}

// accountingIssues checks the fields an invoice cannot be drawn up without
func accountingIssues(load fleet.Load) []string {
	var reasons []string
	if load.CustomerID == uuid.Nil {
		reasons = append(reasons, "Customer is required for invoicing")
	}
	if load.Revenue.IsZero() {
		reasons = append(reasons, "Revenue is required for invoicing")
	}
	if load.Weight.IsZero() {
		reasons = append(reasons, "Weight is required for invoicing")
	}
	return reasons
}

// readyToBillIssues checks POD presence and the carrier/customer rate
// match. A rate mismatch is tolerated for brokerage customers, where a
// split between the two rates is the business model.
func (v *EligibilityValidator) readyToBillIssues(ctx context.Context, load fleet.Load, customer billing.Customer, customerKnown bool) ([]string, error) {
	var reasons []string

	hasPOD, err := v.podChecker.HasPOD(ctx, load.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check POD for load %s: %w", load.LoadNumber, err)
	}
	if !hasPOD {
		reasons = append(reasons, "POD (Proof of Delivery) image is missing")
	}

	brokerageSplit := customerKnown && customer.IsBroker()
	if !load.DriverPay.Equal(load.Revenue) && !brokerageSplit {
		reasons = append(reasons, fmt.Sprintf(
			"Rate mismatch: carrier rate ($%s) does not match customer rate ($%s)",
			load.DriverPay.StringFixed(2), load.Revenue.StringFixed(2)))
	}

	return reasons, nil
}
