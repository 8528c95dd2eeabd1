package seqnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Render(t *testing.T) {
	// 2026-02-10 falls in ISO week 7
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		format Format
		prefix string
		seq    int64
		want   string
	}{
		{"simple pads to three digits", FormatSimple, "LOAD", 1, "LOAD001"},
		{"simple grows past three digits", FormatSimple, "LOAD", 1042, "LOAD1042"},
		{"yearly", FormatYearly, "INV", 7, "INV-2026-007"},
		{"yearly large sequence", FormatYearly, "INV", 12345, "INV-2026-12345"},
		{"weekly", FormatWeekly, "BATCH", 3, "BATCH-2026-W07-003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.format.Render(tt.prefix, at, tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects empty prefix", func(t *testing.T) {
		_, err := FormatYearly.Render("", at, 1)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive sequence", func(t *testing.T) {
		_, err := FormatSimple.Render("LOAD", at, 0)
		assert.Error(t, err)
	})
}

func TestFormat_ScopeKey(t *testing.T) {
	at := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "LOAD", FormatSimple.ScopeKey("LOAD", at))
	assert.Equal(t, "INV:2026", FormatYearly.ScopeKey("INV", at))
	assert.Equal(t, "BATCH:2026-W07", FormatWeekly.ScopeKey("BATCH", at))

	t.Run("year boundary changes yearly scope", func(t *testing.T) {
		dec := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
		jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
		assert.NotEqual(t, FormatYearly.ScopeKey("INV", dec), FormatYearly.ScopeKey("INV", jan))
	})

	t.Run("week boundary changes weekly scope", func(t *testing.T) {
		mon := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
		nextMon := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
		assert.NotEqual(t, FormatWeekly.ScopeKey("BATCH", mon), FormatWeekly.ScopeKey("BATCH", nextMon))
	})

	t.Run("ISO week year used near January 1", func(t *testing.T) {
		// 2027-01-01 is a Friday belonging to ISO week 53 of 2026
		jan1 := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "BATCH:2026-W53", FormatWeekly.ScopeKey("BATCH", jan1))
	})
}
