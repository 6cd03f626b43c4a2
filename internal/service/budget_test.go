package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		limit     float64
		wantUsage float64
		want      BudgetStatus
	}{
		{"over budget", 1200, 1000, 120, StatusOverBudget},
		{"exactly at limit", 1000, 1000, 100, StatusOverBudget},
		{"close to limit", 850, 1000, 85, StatusCloseToLimit},
		{"exactly 80 percent", 800, 1000, 80, StatusCloseToLimit},
		{"on track", 500, 1000, 50, StatusOnTrack},
		{"no spending", 0, 1000, 0, StatusOnTrack},
		{"zero limit", 500, 0, 0, StatusNoBudget},
		{"negative limit", 500, -10, 0, StatusNoBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage, status := ClassifyBudget(tt.total, tt.limit)
			assert.InDelta(t, tt.wantUsage, usage, 1e-9)
			assert.Equal(t, tt.want, status)
		})
	}
}

// Повторное сохранение за тот же период обновляет запись, а не создает вторую
func TestSaveBudgetUpsert(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)
	ctx := context.Background()

	first, err := tracker.SaveBudget(ctx, "user-1", 1000, 7, 2024)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, 1, repo.createBudgetCalls)
	assert.Equal(t, 0, repo.updateBudgetCalls)

	second, err := tracker.SaveBudget(ctx, "user-1", 1500, 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createBudgetCalls)
	assert.Equal(t, 1, repo.updateBudgetCalls)
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 1500, second.LimitAmount, 1e-9)
}

func TestSaveIncomeUpsert(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)
	ctx := context.Background()

	first, err := tracker.SaveIncome(ctx, "user-1", 2000, 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createIncomeCalls)

	second, err := tracker.SaveIncome(ctx, "user-1", 2500, 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createIncomeCalls)
	assert.Equal(t, 1, repo.updateIncomeCalls)
	assert.Equal(t, first.ID, second.ID)
}

func TestSaveBudgetRejectsNegativeLimit(t *testing.T) {
	repo := &fakeRepo{}
	tracker := NewExpenseTracker(repo)

	_, err := tracker.SaveBudget(context.Background(), "user-1", -100, 7, 2024)
	assert.Error(t, err)
	assert.Zero(t, repo.createBudgetCalls)
}
