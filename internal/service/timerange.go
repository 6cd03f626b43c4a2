package service

import (
	"time"

	"github.com/ivanoskov/fivest/internal/model"
)

// Токены диапазонов аналитики
const (
	RangeWeek    = "week"
	RangeMonth   = "month"
	Range3Months = "3months"
)

// ResolveRange переводит токен диапазона в границы [start, end] включительно.
// Неделя начинается с воскресенья. Нераспознанный токен — текущий месяц.
func ResolveRange(token string, today time.Time) (model.Date, model.Date) {
	day := model.DateOf(today)

	switch token {
	case RangeWeek:
		start := day.AddDays(-int(day.Weekday()))
		return start, start.AddDays(6)
	case Range3Months:
		// Скользящее окно в 90 дней, заканчивающееся сегодня
		return day.AddDays(-90), day
	case RangeMonth:
		fallthrough
	default:
		start := model.NewDate(day.Year(), day.Month(), 1)
		end := model.NewDate(day.Year(), day.Month()+1, 0)
		return start, end
	}
}
