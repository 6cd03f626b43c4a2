package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/fivest/internal/model"
	"github.com/ivanoskov/fivest/internal/repository"
)

// fakeRepo считает вызовы и отдает заранее заданные данные
type fakeRepo struct {
	expenses []model.Expense
	budget   *model.Budget
	income   *model.Income

	createExpenseCalls int
	updateExpenseCalls int
	deleteExpenseCalls int
	getExpensesCalls   int
	createBudgetCalls  int
	updateBudgetCalls  int
	createIncomeCalls  int
	updateIncomeCalls  int

	lastFilter repository.ExpenseFilter
}

func (r *fakeRepo) CreateExpense(ctx context.Context, expense *model.Expense) error {
	r.createExpenseCalls++
	r.expenses = append(r.expenses, *expense)
	return nil
}

func (r *fakeRepo) GetExpenses(ctx context.Context, userID string, filter repository.ExpenseFilter) ([]model.Expense, error) {
	r.getExpensesCalls++
	r.lastFilter = filter
	return r.expenses, nil
}

func (r *fakeRepo) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	r.updateExpenseCalls++
	return nil
}

func (r *fakeRepo) DeleteExpense(ctx context.Context, id string, userID string) error {
	r.deleteExpenseCalls++
	return nil
}

func (r *fakeRepo) GetBudget(ctx context.Context, userID string, month, year int) (*model.Budget, error) {
	return r.budget, nil
}

func (r *fakeRepo) CreateBudget(ctx context.Context, budget *model.Budget) error {
	r.createBudgetCalls++
	b := *budget
	r.budget = &b
	return nil
}

func (r *fakeRepo) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	r.updateBudgetCalls++
	b := *budget
	r.budget = &b
	return nil
}

func (r *fakeRepo) GetIncome(ctx context.Context, userID string, month, year int) (*model.Income, error) {
	return r.income, nil
}

func (r *fakeRepo) CreateIncome(ctx context.Context, income *model.Income) error {
	r.createIncomeCalls++
	i := *income
	r.income = &i
	return nil
}

func (r *fakeRepo) UpdateIncome(ctx context.Context, income *model.Income) error {
	r.updateIncomeCalls++
	i := *income
	r.income = &i
	return nil
}

func newTestTracker(repo *fakeRepo, now time.Time) *ExpenseTracker {
	tracker := NewExpenseTracker(repo)
	tracker.now = func() time.Time { return now }
	return tracker
}

func TestAddExpenseGeneratesIDAndDefaultsDate(t *testing.T) {
	repo := &fakeRepo{}
	now := time.Date(2024, time.July, 17, 15, 0, 0, 0, time.UTC)
	tracker := newTestTracker(repo, now)

	expense, err := tracker.AddExpense(context.Background(), "user-1", 12.5, model.CategoryFood, "lunch", model.Date{})
	require.NoError(t, err)

	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, "user-1", expense.UserID)
	assert.Equal(t, "2024-07-17", expense.ExpenseDate.String())
	assert.Equal(t, 1, repo.createExpenseCalls)
}

func TestAddExpenseRejectsNegativeAmount(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo, time.Now())

	_, err := tracker.AddExpense(context.Background(), "user-1", -5, model.CategoryFood, "", model.Date{})
	assert.Error(t, err)
	assert.Zero(t, repo.createExpenseCalls)
}

func TestGetAnalyticsQueriesAscendingRange(t *testing.T) {
	repo := &fakeRepo{
		expenses: []model.Expense{
			{Amount: 10, Category: model.CategoryFood, ExpenseDate: model.NewDate(2024, time.July, 1)},
		},
	}
	now := time.Date(2024, time.July, 17, 12, 0, 0, 0, time.UTC)
	tracker := newTestTracker(repo, now)

	report, err := tracker.GetAnalytics(context.Background(), "user-1", RangeMonth)
	require.NoError(t, err)

	assert.InDelta(t, 10, report.TotalSpent, 1e-9)
	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.True(t, repo.lastFilter.Ascending)
	assert.Equal(t, "2024-07-01", repo.lastFilter.StartDate.String())
	assert.Equal(t, "2024-07-31", repo.lastFilter.EndDate.String())
}

func TestGetOverviewMergesIndependentFetches(t *testing.T) {
	repo := &fakeRepo{
		budget: &model.Budget{ID: "b1", UserID: "user-1", LimitAmount: 1000, Month: 7, Year: 2024},
		income: &model.Income{ID: "i1", UserID: "user-1", Amount: 2000, Month: 7, Year: 2024},
		expenses: []model.Expense{
			{Amount: 200, Category: model.CategoryFood, ExpenseDate: model.NewDate(2024, time.July, 2)},
			{Amount: 100, Category: model.CategoryBills, ExpenseDate: model.NewDate(2024, time.July, 3)},
		},
	}
	now := time.Date(2024, time.July, 17, 12, 0, 0, 0, time.UTC)
	tracker := newTestTracker(repo, now)

	overview, err := tracker.GetOverview(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 7, overview.Month)
	assert.Equal(t, 2024, overview.Year)
	assert.InDelta(t, 2000, overview.MonthlyIncome, 1e-9)
	assert.InDelta(t, 1000, overview.BudgetLimit, 1e-9)
	assert.InDelta(t, 300, overview.TotalExpenses, 1e-9)
	assert.InDelta(t, 700, overview.Remaining, 1e-9)
	assert.InDelta(t, 30, overview.Usage, 1e-9)
	assert.Equal(t, StatusOnTrack, overview.Status)
}

func TestGetOverviewWithoutBudget(t *testing.T) {
	repo := &fakeRepo{
		expenses: []model.Expense{
			{Amount: 50, Category: model.CategoryFood, ExpenseDate: model.NewDate(2024, time.July, 2)},
		},
	}
	tracker := newTestTracker(repo, time.Date(2024, time.July, 17, 12, 0, 0, 0, time.UTC))

	overview, err := tracker.GetOverview(context.Background(), "user-1")
	require.NoError(t, err)

	// Лимит не задан: отдельное состояние вместо NaN
	assert.Equal(t, StatusNoBudget, overview.Status)
	assert.Zero(t, overview.Usage)
}
