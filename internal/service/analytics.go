package service

import (
	"github.com/ivanoskov/fivest/internal/model"
)

// CategoryTotal — сумма расходов по одной категории
type CategoryTotal struct {
	Category model.Category `json:"category"`
	Amount   float64        `json:"amount"`
}

// DailyTotal — сумма расходов за один календарный день
type DailyTotal struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

// Report — производные показатели по отфильтрованному списку расходов
type Report struct {
	CategoryTotals  []CategoryTotal `json:"category_totals"`
	DailyTotals     []DailyTotal    `json:"daily_totals"`
	TotalSpent      float64         `json:"total_spent"`
	AvgPerDay       float64         `json:"avg_per_day"`
	TopCategory     CategoryTotal   `json:"top_category"`
	TopCategoryIcon string          `json:"top_category_icon"`
}

// BuildReport строит отчет по списку расходов, уже отфильтрованному
// по одному пользователю и одному периоду.
//
// Порядок категорий и дней — порядок первого появления во входном списке,
// без сортировки; категории и дни без расходов не синтезируются.
// Метки дней не содержат года, поэтому одинаковые дни разных лет
// склеиваются в одну корзину.
func BuildReport(expenses []model.Expense) *Report {
	report := &Report{
		CategoryTotals: make([]CategoryTotal, 0),
		DailyTotals:    make([]DailyTotal, 0),
	}

	categoryIndex := make(map[model.Category]int)
	dayIndex := make(map[string]int)

	for _, e := range expenses {
		if i, ok := categoryIndex[e.Category]; ok {
			report.CategoryTotals[i].Amount += e.Amount
		} else {
			categoryIndex[e.Category] = len(report.CategoryTotals)
			report.CategoryTotals = append(report.CategoryTotals, CategoryTotal{
				Category: e.Category,
				Amount:   e.Amount,
			})
		}

		day := e.ExpenseDate.DayLabel()
		if i, ok := dayIndex[day]; ok {
			report.DailyTotals[i].Amount += e.Amount
		} else {
			dayIndex[day] = len(report.DailyTotals)
			report.DailyTotals = append(report.DailyTotals, DailyTotal{
				Day:    day,
				Amount: e.Amount,
			})
		}

		report.TotalSpent += e.Amount
	}

	// Защита от деления на ноль: без дневных корзин среднее равно нулю
	if len(report.DailyTotals) > 0 {
		report.AvgPerDay = report.TotalSpent / float64(len(report.DailyTotals))
	}

	// Максимум по строгому "больше" от нулевого начального значения:
	// при равенстве побеждает первая встреченная категория
	for _, ct := range report.CategoryTotals {
		if ct.Amount > report.TopCategory.Amount {
			report.TopCategory = ct
		}
	}
	report.TopCategoryIcon = report.TopCategory.Category.Icon()

	return report
}
