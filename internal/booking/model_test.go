package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{
			name:   "disjoint ranges",
			aStart: date(2026, 3, 1), aEnd: date(2026, 3, 5),
			bStart: date(2026, 3, 10), bEnd: date(2026, 3, 12),
			want: false,
		},
		{
			name:   "partial overlap",
			aStart: date(2026, 3, 1), aEnd: date(2026, 3, 5),
			bStart: date(2026, 3, 4), bEnd: date(2026, 3, 8),
			want: true,
		},
		{
			name:   "identical ranges",
			aStart: date(2026, 3, 1), aEnd: date(2026, 3, 5),
			bStart: date(2026, 3, 1), bEnd: date(2026, 3, 5),
			want: true,
		},
		{
			name:   "b contained in a",
			aStart: date(2026, 3, 1), aEnd: date(2026, 3, 10),
			bStart: date(2026, 3, 3), bEnd: date(2026, 3, 5),
			want: true,
		},
		{
			name:   "a contained in b",
			aStart: date(2026, 3, 3), aEnd: date(2026, 3, 5),
			bStart: date(2026, 3, 1), bEnd: date(2026, 3, 10),
			want: true,
		},
		{
			// Checkout day doubles as the next guest's check-in day.
			name:   "back-to-back does not overlap",
			aStart: date(2026, 3, 1), aEnd: date(2026, 3, 5),
			bStart: date(2026, 3, 5), bEnd: date(2026, 3, 8),
			want: false,
		},
		{
			name:   "single-night inside range",
			aStart: date(2026, 3, 2), aEnd: date(2026, 3, 3),
			bStart: date(2026, 3, 1), bEnd: date(2026, 3, 10),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.want, got)

			// Overlap is symmetric.
			mirrored := RangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			assert.Equal(t, tt.want, mirrored, "overlap should be symmetric")
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := date(2026, 6, 15)

	tests := []struct {
		name    string
		status  Status
		endDate time.Time
		want    Status
	}{
		{"confirmed with future end date", StatusConfirmed, date(2026, 6, 20), StatusConfirmed},
		{"confirmed with past end date reads completed", StatusConfirmed, date(2026, 6, 10), StatusCompleted},
		{"confirmed ending today is not yet completed", StatusConfirmed, date(2026, 6, 15), StatusConfirmed},
		{"pending never completes", StatusPending, date(2026, 6, 10), StatusPending},
		{"cancelled stays cancelled", StatusCancelled, date(2026, 6, 10), StatusCancelled},
		{"rejected stays rejected", StatusRejected, date(2026, 6, 10), StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, EndDate: tt.endDate}
			assert.Equal(t, tt.want, b.EffectiveStatus(now))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())

	assert.True(t, StatusPending.Blocks())
	assert.True(t, StatusConfirmed.Blocks())
	assert.True(t, StatusCompleted.Blocks())
	assert.False(t, StatusCancelled.Blocks())
	assert.False(t, StatusRejected.Blocks())
}
