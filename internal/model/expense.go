package model

import (
	"time"

	"github.com/google/uuid"
)

// Expense — запись о расходе пользователя
type Expense struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	ExpenseDate Date      `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// GenerateID генерирует новый UUID для расхода, если он еще не установлен
func (e *Expense) GenerateID() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
}
