package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivanoskov/fivest/internal/model"
	"github.com/ivanoskov/fivest/internal/repository"
)

// ExpenseTracker предоставляет операции над финансовыми данными пользователя
type ExpenseTracker struct {
	repo repository.Repository
	now  func() time.Time
}

// NewExpenseTracker создает новый экземпляр ExpenseTracker
func NewExpenseTracker(repo repository.Repository) *ExpenseTracker {
	return &ExpenseTracker{
		repo: repo,
		now:  time.Now,
	}
}

// AddExpense создает расход; пустая дата означает сегодня
func (s *ExpenseTracker) AddExpense(ctx context.Context, userID string, amount float64, category model.Category, description string, date model.Date) (*model.Expense, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount must be non-negative, got %.2f", amount)
	}
	if date.IsZero() {
		date = model.DateOf(s.now())
	}

	expense := &model.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		ExpenseDate: date,
		CreatedAt:   s.now(),
	}
	expense.GenerateID()

	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpenses возвращает расходы пользователя по фильтру
func (s *ExpenseTracker) GetExpenses(ctx context.Context, userID string, filter repository.ExpenseFilter) ([]model.Expense, error) {
	return s.repo.GetExpenses(ctx, userID, filter)
}

// UpdateExpense обновляет сумму, категорию, описание и дату расхода
func (s *ExpenseTracker) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	if expense.ID == "" {
		return fmt.Errorf("expense id is required")
	}
	if expense.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %.2f", expense.Amount)
	}
	return s.repo.UpdateExpense(ctx, expense)
}

// DeleteExpense удаляет расход пользователя по идентификатору
func (s *ExpenseTracker) DeleteExpense(ctx context.Context, id string, userID string) error {
	return s.repo.DeleteExpense(ctx, id, userID)
}

// GetAnalytics строит отчет за диапазон: week, month или 3months.
// Расходы запрашиваются по возрастанию даты, как их отображает аналитика.
func (s *ExpenseTracker) GetAnalytics(ctx context.Context, userID string, rangeToken string) (*Report, error) {
	start, end := ResolveRange(rangeToken, s.now())

	expenses, err := s.repo.GetExpenses(ctx, userID, repository.ExpenseFilter{
		StartDate: &start,
		EndDate:   &end,
		Ascending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for analytics: %w", err)
	}

	log.Printf("Получено расходов за период %s — %s: %d", start, end, len(expenses))
	return BuildReport(expenses), nil
}

// Overview — сводка месяца для карточек дашборда
type Overview struct {
	Month         int          `json:"month"`
	Year          int          `json:"year"`
	MonthlyIncome float64      `json:"monthly_income"`
	BudgetLimit   float64      `json:"budget_limit"`
	TotalExpenses float64      `json:"total_expenses"`
	Remaining     float64      `json:"remaining"`
	Usage         float64      `json:"usage"`
	Status        BudgetStatus `json:"status"`
}

// GetOverview собирает сводку текущего месяца. Бюджет, доход и расходы
// запрашиваются независимо и параллельно, результат сливается локально.
func (s *ExpenseTracker) GetOverview(ctx context.Context, userID string) (*Overview, error) {
	now := s.now()
	month := int(now.Month())
	year := now.Year()

	start := model.NewDate(year, now.Month(), 1)
	end := model.NewDate(year, now.Month()+1, 0)

	var (
		budget   *model.Budget
		income   *model.Income
		expenses []model.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budget, err = s.repo.GetBudget(gctx, userID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		income, err = s.repo.GetIncome(gctx, userID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.repo.GetExpenses(gctx, userID, repository.ExpenseFilter{
			StartDate: &start,
			EndDate:   &end,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}

	overview := &Overview{
		Month: month,
		Year:  year,
	}
	if budget != nil {
		overview.BudgetLimit = budget.LimitAmount
	}
	if income != nil {
		overview.MonthlyIncome = income.Amount
	}
	for _, e := range expenses {
		overview.TotalExpenses += e.Amount
	}

	overview.Remaining = overview.BudgetLimit - overview.TotalExpenses
	overview.Usage, overview.Status = ClassifyBudget(overview.TotalExpenses, overview.BudgetLimit)

	return overview, nil
}
