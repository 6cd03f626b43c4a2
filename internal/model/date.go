package model

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date — календарная дата без времени суток.
// В Supabase колонки expense_date имеют тип date и сериализуются как "2006-01-02".
type Date struct {
	time.Time
}

// NewDate создает дату; day может выходить за границы месяца и нормализуется
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf обрезает время до календарной даты
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate разбирает дату из строки формата "2006-01-02"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// DayLabel возвращает метку дня для дневных корзин аналитики ("Jan 02").
// Год в метке отсутствует намеренно: так делает исходный выбор формата,
// и корзины одинаковых дней разных лет склеиваются.
func (d Date) DayLabel() string {
	return d.Format("Jan 02")
}

// AddDays возвращает дату со сдвигом на days дней
func (d Date) AddDays(days int) Date {
	return Date{d.AddDate(0, 0, days)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Supabase может вернуть дату вместе со временем, отрезаем хвост
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero сообщает, что дата не заполнена
func (d Date) IsZero() bool {
	return d.Time.IsZero()
}
