package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ivanoskov/fivest/internal/model"
)

// BudgetStatus — состояние расходов относительно лимита
type BudgetStatus string

const (
	StatusOnTrack      BudgetStatus = "on_track"
	StatusCloseToLimit BudgetStatus = "close_to_limit"
	StatusOverBudget   BudgetStatus = "over_budget"
	// StatusNoBudget — лимит не задан; отдельное состояние вместо
	// деления на ноль и NaN в сравнениях
	StatusNoBudget BudgetStatus = "no_budget"
)

// ClassifyBudget возвращает процент использования лимита и статус.
// Границы включающие: ровно 80% — close_to_limit, ровно 100% — over_budget.
func ClassifyBudget(totalExpenses, limit float64) (float64, BudgetStatus) {
	if limit <= 0 {
		return 0, StatusNoBudget
	}

	usage := totalExpenses / limit * 100
	switch {
	case usage >= 100:
		return usage, StatusOverBudget
	case usage >= 80:
		return usage, StatusCloseToLimit
	default:
		return usage, StatusOnTrack
	}
}

// SaveBudget сохраняет месячный лимит: обновляет существующую запись периода
// или создает новую. Не больше одной записи на (user, month, year).
func (s *ExpenseTracker) SaveBudget(ctx context.Context, userID string, limitAmount float64, month, year int) (*model.Budget, error) {
	if limitAmount < 0 {
		return nil, fmt.Errorf("budget limit must be non-negative, got %.2f", limitAmount)
	}

	existing, err := s.repo.GetBudget(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget for %02d.%d: %w", month, year, err)
	}

	if existing != nil {
		existing.LimitAmount = limitAmount
		if err := s.repo.UpdateBudget(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update budget: %w", err)
		}
		return existing, nil
	}

	budget := &model.Budget{
		UserID:      userID,
		LimitAmount: limitAmount,
		Month:       month,
		Year:        year,
		CreatedAt:   time.Now(),
	}
	budget.GenerateID()
	if err := s.repo.CreateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return budget, nil
}

// SaveIncome сохраняет месячный доход по тем же правилам, что и SaveBudget
func (s *ExpenseTracker) SaveIncome(ctx context.Context, userID string, amount float64, month, year int) (*model.Income, error) {
	if amount < 0 {
		return nil, fmt.Errorf("income must be non-negative, got %.2f", amount)
	}

	existing, err := s.repo.GetIncome(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get income for %02d.%d: %w", month, year, err)
	}

	if existing != nil {
		existing.Amount = amount
		if err := s.repo.UpdateIncome(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update income: %w", err)
		}
		return existing, nil
	}

	income := &model.Income{
		UserID:    userID,
		Amount:    amount,
		Month:     month,
		Year:      year,
		CreatedAt: time.Now(),
	}
	income.GenerateID()
	if err := s.repo.CreateIncome(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return income, nil
}
