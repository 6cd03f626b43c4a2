package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveRange(t *testing.T) {
	// Среда, середина месяца
	today := time.Date(2024, time.July, 17, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		token     string
		wantStart string
		wantEnd   string
	}{
		{"week starts on sunday", RangeWeek, "2024-07-14", "2024-07-20"},
		{"month covers calendar month", RangeMonth, "2024-07-01", "2024-07-31"},
		{"3months is a 90 day window", Range3Months, "2024-04-18", "2024-07-17"},
		{"unknown token falls back to month", "year", "2024-07-01", "2024-07-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ResolveRange(tt.token, today)
			assert.Equal(t, tt.wantStart, start.String())
			assert.Equal(t, tt.wantEnd, end.String())
		})
	}
}

func TestResolveRangeWeekOnSunday(t *testing.T) {
	// Сегодня воскресенье: неделя начинается сегодня же
	today := time.Date(2024, time.July, 14, 9, 0, 0, 0, time.UTC)

	start, end := ResolveRange(RangeWeek, today)
	assert.Equal(t, "2024-07-14", start.String())
	assert.Equal(t, "2024-07-20", end.String())
}

func TestResolveRangeMonthAcrossYears(t *testing.T) {
	today := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)

	start, end := ResolveRange(RangeMonth, today)
	assert.Equal(t, "2024-12-01", start.String())
	assert.Equal(t, "2024-12-31", end.String())
}
