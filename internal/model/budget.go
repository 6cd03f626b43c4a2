package model

import (
	"time"

	"github.com/google/uuid"
)

// Budget — месячный лимит расходов, не больше одной записи на (user, month, year)
type Budget struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	LimitAmount float64   `json:"limit_amount"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// GenerateID генерирует новый UUID для бюджета, если он еще не установлен
func (b *Budget) GenerateID() {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
}

// Income — месячный доход, не больше одной записи на (user, month, year).
// Используется только для отображения, лимитов не накладывает.
type Income struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// GenerateID генерирует новый UUID для дохода, если он еще не установлен
func (i *Income) GenerateID() {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
}
