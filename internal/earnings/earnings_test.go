package earnings_test

import (
	"testing"

	"github.com/UnknownOlympus/tally/internal/earnings"
	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursForShift(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		shift models.WorkShift
		want  float64
	}{
		{name: "nothing set", shift: models.WorkShift{}, want: 0},
		{name: "morning", shift: models.WorkShift{Morning: true}, want: 4},
		{name: "evening", shift: models.WorkShift{Evening: true}, want: 4},
		{name: "morning and evening", shift: models.WorkShift{Morning: true, Evening: true}, want: 8},
		{name: "all day", shift: models.WorkShift{AllDay: true}, want: 8},
		{name: "all day overrides halves", shift: models.WorkShift{Morning: true, Evening: true, AllDay: true}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, earnings.HoursForShift(tt.shift), 0.0001)
		})
	}
}

func TestHoursForRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record models.WorkRecord
		want   float64
	}{
		{
			name: "shifts summed over clients",
			record: models.WorkRecord{Shifts: models.Shifts{
				"a": {Morning: true},
				"b": {AllDay: true},
			}},
			want: 12,
		},
		{
			name:   "legacy hours taken verbatim",
			record: models.WorkRecord{Shifts: models.LegacyHours{"a": 3, "b": 2.5}},
			want:   5.5,
		},
		{
			name: "absence ignores detail",
			record: models.WorkRecord{
				IsAbsence: true,
				Shifts:    models.Shifts{"a": {AllDay: true}},
			},
			want: 0,
		},
		{
			name:   "no activity",
			record: models.WorkRecord{},
			want:   0,
		},
		{
			name:   "clients without detail",
			record: models.WorkRecord{ClientIDs: []string{"a"}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, earnings.HoursForRecord(tt.record), 0.0001)
		})
	}
}

func TestDailyEarnings(t *testing.T) {
	t.Parallel()

	rate := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		record   models.WorkRecord
		want     string
		fraction earnings.PayFraction
	}{
		{
			name: "absence pays nothing even with shifts",
			record: models.WorkRecord{
				IsAbsence: true,
				ClientIDs: []string{"a"},
				Shifts:    models.Shifts{"a": {AllDay: true}},
			},
			want:     "0",
			fraction: earnings.PayNone,
		},
		{
			name:     "absence pays nothing with legacy hours",
			record:   models.WorkRecord{IsAbsence: true, Shifts: models.LegacyHours{"a": 8}},
			want:     "0",
			fraction: earnings.PayNone,
		},
		{
			name:     "all day is a full day",
			record:   models.WorkRecord{Shifts: models.Shifts{"a": {AllDay: true}}},
			want:     "100",
			fraction: earnings.PayFull,
		},
		{
			name: "all day wins over a half on another client",
			record: models.WorkRecord{Shifts: models.Shifts{
				"a": {Morning: true},
				"b": {AllDay: true},
			}},
			want:     "100",
			fraction: earnings.PayFull,
		},
		{
			name: "halves on different clients merge into a full day",
			record: models.WorkRecord{Shifts: models.Shifts{
				"a": {Morning: true},
				"b": {Evening: true},
			}},
			want:     "100",
			fraction: earnings.PayFull,
		},
		{
			name:     "morning only is half a day",
			record:   models.WorkRecord{Shifts: models.Shifts{"a": {Morning: true}}},
			want:     "50",
			fraction: earnings.PayHalf,
		},
		{
			name: "two mornings are still half a day",
			record: models.WorkRecord{Shifts: models.Shifts{
				"a": {Morning: true},
				"b": {Morning: true},
			}},
			want:     "50",
			fraction: earnings.PayHalf,
		},
		{
			name:     "evening only is half a day",
			record:   models.WorkRecord{Shifts: models.Shifts{"a": {Evening: true}}},
			want:     "50",
			fraction: earnings.PayHalf,
		},
		{
			name: "shifts with no flag pay nothing",
			record: models.WorkRecord{
				ClientIDs: []string{"a"},
				Shifts:    models.Shifts{"a": {}},
			},
			want:     "0",
			fraction: earnings.PayNone,
		},
		{
			name:     "legacy hours pay a full day regardless of value",
			record:   models.WorkRecord{Shifts: models.LegacyHours{"a": 3}},
			want:     "100",
			fraction: earnings.PayFull,
		},
		{
			name:     "assigned client without detail pays a full day",
			record:   models.WorkRecord{ClientIDs: []string{"a"}},
			want:     "100",
			fraction: earnings.PayFull,
		},
		{
			name:     "empty shift map falls through to assigned clients",
			record:   models.WorkRecord{ClientIDs: []string{"a"}, Shifts: models.Shifts{}},
			want:     "100",
			fraction: earnings.PayFull,
		},
		{
			name:     "no activity pays nothing",
			record:   models.WorkRecord{},
			want:     "0",
			fraction: earnings.PayNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.fraction, earnings.Classify(tt.record))

			got, err := earnings.DailyEarnings(tt.record, rate)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestDailyEarnings_HalfOfOddRate(t *testing.T) {
	t.Parallel()

	got, err := earnings.DailyEarnings(
		models.WorkRecord{Shifts: models.Shifts{"a": {Evening: true}}},
		decimal.RequireFromString("125.25"),
	)
	require.NoError(t, err)
	assert.Equal(t, "62.625", got.String())
}

func TestDailyEarnings_InvalidRate(t *testing.T) {
	t.Parallel()

	_, err := earnings.DailyEarnings(models.WorkRecord{ClientIDs: []string{"a"}}, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, earnings.ErrInvalidRate)
}

func TestPayFraction_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "full", earnings.PayFull.String())
	assert.Equal(t, "half", earnings.PayHalf.String())
	assert.Equal(t, "none", earnings.PayNone.String())
}
