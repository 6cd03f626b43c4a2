package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/fivest/internal/model"
)

const (
	expensesTable = "expenses"
	budgetsTable  = "budgets"
	incomesTable  = "incomes"
)

// budgetKey — ключ уникальности для атомарного upsert на стороне хранилища:
// одновременные сохранения из двух сессий схлопываются в обновление,
// а не плодят дубликаты
const budgetKey = "user_id,month,year"

type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	data, _, err := r.client.From(expensesTable).Insert(expense, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	// Парсим ответ для получения ID и created_at
	var created []model.Expense
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created expense: %w", err)
	}
	if len(created) > 0 {
		expense.ID = created[0].ID
		expense.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]model.Expense, error) {
	query := r.client.From(expensesTable).
		Select("*", "", false).
		Eq("user_id", userID)

	if filter.Date != nil {
		query = query.Eq("expense_date", filter.Date.String())
	} else {
		if filter.StartDate != nil {
			query = query.Gte("expense_date", filter.StartDate.String())
		}
		if filter.EndDate != nil {
			query = query.Lte("expense_date", filter.EndDate.String())
		}
	}

	// Сортировка по дате и времени создания, направление задает вызывающий
	if filter.Ascending {
		query = query.Order("expense_date.asc", nil).Order("created_at.asc", nil)
	} else {
		query = query.Order("expense_date.desc", nil).Order("created_at.desc", nil)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []model.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("failed to parse expenses: %w", err)
	}
	return expenses, nil
}

// expenseUpdate — частичное обновление: id, user_id и created_at не перезаписываются
type expenseUpdate struct {
	Amount      float64        `json:"amount"`
	Category    model.Category `json:"category"`
	Description string         `json:"description"`
	ExpenseDate model.Date     `json:"expense_date"`
}

func (r *SupabaseRepository) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	update := expenseUpdate{
		Amount:      expense.Amount,
		Category:    expense.Category,
		Description: expense.Description,
		ExpenseDate: expense.ExpenseDate,
	}
	_, _, err := r.client.From(expensesTable).
		Update(update, "", "").
		Eq("id", expense.ID).
		Eq("user_id", expense.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) DeleteExpense(ctx context.Context, id string, userID string) error {
	_, _, err := r.client.From(expensesTable).
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetBudget(ctx context.Context, userID string, month, year int) (*model.Budget, error) {
	data, _, err := r.client.From(budgetsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("month", fmt.Sprintf("%d", month)).
		Eq("year", fmt.Sprintf("%d", year)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	var budgets []model.Budget
	if err := json.Unmarshal(data, &budgets); err != nil {
		return nil, fmt.Errorf("failed to parse budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	return &budgets[0], nil
}

func (r *SupabaseRepository) CreateBudget(ctx context.Context, budget *model.Budget) error {
	data, _, err := r.client.From(budgetsTable).Insert(budget, true, budgetKey, "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	var created []model.Budget
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created budget: %w", err)
	}
	if len(created) > 0 {
		budget.ID = created[0].ID
		budget.CreatedAt = created[0].CreatedAt
	}
	return nil
}

type budgetUpdate struct {
	LimitAmount float64 `json:"limit_amount"`
}

func (r *SupabaseRepository) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	_, _, err := r.client.From(budgetsTable).
		Update(budgetUpdate{LimitAmount: budget.LimitAmount}, "", "").
		Eq("id", budget.ID).
		Eq("user_id", budget.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetIncome(ctx context.Context, userID string, month, year int) (*model.Income, error) {
	data, _, err := r.client.From(incomesTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("month", fmt.Sprintf("%d", month)).
		Eq("year", fmt.Sprintf("%d", year)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	var incomes []model.Income
	if err := json.Unmarshal(data, &incomes); err != nil {
		return nil, fmt.Errorf("failed to parse incomes: %w", err)
	}
	if len(incomes) == 0 {
		return nil, nil
	}
	return &incomes[0], nil
}

func (r *SupabaseRepository) CreateIncome(ctx context.Context, income *model.Income) error {
	data, _, err := r.client.From(incomesTable).Insert(income, true, budgetKey, "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}

	var created []model.Income
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created income: %w", err)
	}
	if len(created) > 0 {
		income.ID = created[0].ID
		income.CreatedAt = created[0].CreatedAt
	}
	return nil
}

type incomeUpdate struct {
	Amount float64 `json:"amount"`
}

func (r *SupabaseRepository) UpdateIncome(ctx context.Context, income *model.Income) error {
	_, _, err := r.client.From(incomesTable).
		Update(incomeUpdate{Amount: income.Amount}, "", "").
		Eq("id", income.ID).
		Eq("user_id", income.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return nil
}
