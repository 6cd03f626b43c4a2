package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ivanoskov/fivest/internal/model"
	"github.com/ivanoskov/fivest/internal/repository"
	"github.com/ivanoskov/fivest/internal/service"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		// Сообщение сервиса аутентификации отдается дословно
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.SignOut(r.Context(), bearerToken(r)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	filter := repository.ExpenseFilter{}
	query := r.URL.Query()

	if v := query.Get("date"); v != "" {
		date, err := model.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected yyyy-mm-dd")
			return
		}
		filter.Date = &date
	} else if v := query.Get("range"); v != "" {
		start, end := service.ResolveRange(v, time.Now())
		filter.StartDate = &start
		filter.EndDate = &end
	}
	filter.Ascending = query.Get("order") == "asc"

	expenses, err := s.service.GetExpenses(r.Context(), user.ID, filter)
	if err != nil {
		log.Printf("Error loading expenses for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to load expenses")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

type expenseRequest struct {
	Amount      float64        `json:"amount"`
	Category    model.Category `json:"category"`
	Description string         `json:"description"`
	ExpenseDate model.Date     `json:"expense_date"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusUnprocessableEntity, "amount must be non-negative")
		return
	}

	expense, err := s.service.AddExpense(r.Context(), user.ID, req.Amount, req.Category, req.Description, req.ExpenseDate)
	if err != nil {
		log.Printf("Error creating expense for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to save expense")
		return
	}

	s.cache.Invalidate(user.ID)
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusUnprocessableEntity, "amount must be non-negative")
		return
	}

	expense := &model.Expense{
		ID:          r.PathValue("id"),
		UserID:      user.ID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ExpenseDate: req.ExpenseDate,
	}
	if err := s.service.UpdateExpense(r.Context(), expense); err != nil {
		log.Printf("Error updating expense %s for user %s: %v", expense.ID, user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to update expense")
		return
	}

	s.cache.Invalidate(user.ID)
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	if err := s.service.DeleteExpense(r.Context(), r.PathValue("id"), user.ID); err != nil {
		log.Printf("Error deleting expense %s for user %s: %v", r.PathValue("id"), user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to delete expense")
		return
	}

	s.cache.Invalidate(user.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	gen := s.cache.Generation(user.ID)
	if cached, ok := s.cache.Get(user.ID, "overview"); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	overview, err := s.service.GetOverview(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error loading overview for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to load overview")
		return
	}

	s.cache.Set(user.ID, "overview", gen, overview)
	writeJSON(w, http.StatusOK, overview)
}

type budgetRequest struct {
	LimitAmount float64 `json:"limit_amount"`
	Month       int     `json:"month,omitempty"`
	Year        int     `json:"year,omitempty"`
}

func (s *Server) handleSaveBudget(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	month, year := defaultPeriod(req.Month, req.Year)
	if req.LimitAmount < 0 {
		writeError(w, http.StatusUnprocessableEntity, "limit_amount must be non-negative")
		return
	}

	budget, err := s.service.SaveBudget(r.Context(), user.ID, req.LimitAmount, month, year)
	if err != nil {
		log.Printf("Error saving budget for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to save budget")
		return
	}

	s.cache.Invalidate(user.ID)
	writeJSON(w, http.StatusOK, budget)
}

type incomeRequest struct {
	Amount float64 `json:"amount"`
	Month  int     `json:"month,omitempty"`
	Year   int     `json:"year,omitempty"`
}

func (s *Server) handleSaveIncome(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	month, year := defaultPeriod(req.Month, req.Year)
	if req.Amount < 0 {
		writeError(w, http.StatusUnprocessableEntity, "amount must be non-negative")
		return
	}

	income, err := s.service.SaveIncome(r.Context(), user.ID, req.Amount, month, year)
	if err != nil {
		log.Printf("Error saving income for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to save income")
		return
	}

	s.cache.Invalidate(user.ID)
	writeJSON(w, http.StatusOK, income)
}

// defaultPeriod подставляет текущий месяц и год вместо незаполненных
func defaultPeriod(month, year int) (int, int) {
	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	rangeToken := r.URL.Query().Get("range")

	report, err := s.analyticsReport(r, user, rangeToken)
	if err != nil {
		log.Printf("Error building analytics for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to load analytics")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAnalyticsChart(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	rangeToken := r.URL.Query().Get("range")

	report, err := s.analyticsReport(r, user, rangeToken)
	if err != nil {
		log.Printf("Error building analytics for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to load analytics")
		return
	}

	var png []byte
	switch r.URL.Query().Get("type") {
	case "daily":
		png, err = s.charts.GenerateDailyTrendChart(report)
	case "pie":
		png, err = s.charts.GenerateCategoryPieChart(report)
	case "category", "":
		png, err = s.charts.GenerateCategoryBarChart(report)
	default:
		writeError(w, http.StatusBadRequest, "unknown chart type")
		return
	}
	if err != nil {
		log.Printf("Error rendering chart for user %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	if png == nil {
		// Нет данных для графика
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// analyticsReport отдает отчет из кэша или строит его для текущего поколения
func (s *Server) analyticsReport(r *http.Request, user *model.User, rangeToken string) (*service.Report, error) {
	key := "analytics|" + rangeToken

	gen := s.cache.Generation(user.ID)
	if cached, ok := s.cache.Get(user.ID, key); ok {
		if report, ok := cached.(*service.Report); ok {
			return report, nil
		}
	}

	report, err := s.service.GetAnalytics(r.Context(), user.ID, rangeToken)
	if err != nil {
		return nil, err
	}
	s.cache.Set(user.ID, key, gen, report)
	return report, nil
}
