package repository

import (
	"context"

	"github.com/ivanoskov/fivest/internal/model"
)

// ExpenseFilter задает выборку расходов пользователя.
// Date — точная дата (дневной трекер); иначе действует диапазон [StartDate, EndDate].
// Пустой фильтр означает полную историю.
type ExpenseFilter struct {
	Date      *model.Date
	StartDate *model.Date
	EndDate   *model.Date
	Ascending bool
	Limit     int
}

type Repository interface {
	// Расходы
	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) error
	DeleteExpense(ctx context.Context, id string, userID string) error

	// Бюджет: не больше одной записи на (user, month, year)
	GetBudget(ctx context.Context, userID string, month, year int) (*model.Budget, error)
	CreateBudget(ctx context.Context, budget *model.Budget) error
	UpdateBudget(ctx context.Context, budget *model.Budget) error

	// Доход: не больше одной записи на (user, month, year)
	GetIncome(ctx context.Context, userID string, month, year int) (*model.Income, error)
	CreateIncome(ctx context.Context, income *model.Income) error
	UpdateIncome(ctx context.Context, income *model.Income) error
}
