// Package seqnum formats human-facing sequential identifiers for billing
// entities. Formatting is pure: persistence and uniqueness live with the
// number allocator in the persistence layer.
package seqnum

import (
	"fmt"
	"time"
)

// Format selects the identifier layout
type Format string

const (
	// FormatSimple produces PREFIX+NNN, e.g. LOAD001
	FormatSimple Format = "simple"
	// FormatYearly produces PREFIX-YYYY-NNN and restarts each year, e.g. INV-2026-001
	FormatYearly Format = "yearly"
	// FormatWeekly produces PREFIX-YYYY-Wnn-NNN and restarts each ISO week,
	// e.g. BATCH-2026-W07-001
	FormatWeekly Format = "weekly"
)

// IsValid checks if the format is known
func (f Format) IsValid() bool {
	return f == FormatSimple || f == FormatYearly || f == FormatWeekly
}

// ScopeKey returns the sequence scope for a prefix at a point in time.
// Sequences restart at 1 whenever the scope key changes, so yearly formats
// restart at the year boundary and weekly formats at the ISO week boundary.
func (f Format) ScopeKey(prefix string, at time.Time) string {
	switch f {
	case FormatYearly:
		return fmt.Sprintf("%s:%d", prefix, at.Year())
	case FormatWeekly:
		year, week := at.ISOWeek()
		return fmt.Sprintf("%s:%d-W%02d", prefix, year, week)
	default:
		return prefix
	}
}

// Render produces the identifier for a sequence value within a scope.
// The numeric suffix is zero-padded to at least 3 digits and grows as needed.
func (f Format) Render(prefix string, at time.Time, seq int64) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("seqnum: empty prefix")
	}
	if seq <= 0 {
		return "", fmt.Errorf("seqnum: invalid sequence value %d", seq)
	}

	switch f {
	case FormatSimple:
		return fmt.Sprintf("%s%03d", prefix, seq), nil
	case FormatYearly:
		return fmt.Sprintf("%s-%d-%03d", prefix, at.Year(), seq), nil
	case FormatWeekly:
		year, week := at.ISOWeek()
		return fmt.Sprintf("%s-%d-W%02d-%03d", prefix, year, week, seq), nil
	default:
		return "", fmt.Errorf("seqnum: unknown format %q", string(f))
	}
}
