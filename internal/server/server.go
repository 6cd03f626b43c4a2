package server

import (
	"context"
	"net/http"
	"time"

	"github.com/ivanoskov/fivest/internal/auth"
	"github.com/ivanoskov/fivest/internal/charts"
	"github.com/ivanoskov/fivest/internal/model"
	"github.com/ivanoskov/fivest/internal/service"
)

// Authenticator — сессионный сервис, который использует HTTP-слой
type Authenticator interface {
	SignUp(ctx context.Context, email, password, fullName string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
	UserFromToken(ctx context.Context, token string) (*model.User, error)
	OnAuthStateChange(fn auth.Listener) func()
}

// Server — HTTP-слой приложения поверх сервиса и сессионного провайдера
type Server struct {
	service *service.ExpenseTracker
	auth    Authenticator
	charts  *charts.ChartGenerator
	cache   *reportCache
	mux     *http.ServeMux
}

func NewServer(svc *service.ExpenseTracker, authn Authenticator, generator *charts.ChartGenerator) *Server {
	s := &Server{
		service: svc,
		auth:    authn,
		charts:  generator,
		cache:   newReportCache(256, 5*time.Minute),
		mux:     http.NewServeMux(),
	}

	// Выход из системы сбрасывает состояние, привязанное к пользователю,
	// вместо перезапуска процесса
	authn.OnAuthStateChange(func(event auth.Event, user *model.User) {
		if event == auth.EventSignedOut && user != nil {
			s.cache.Invalidate(user.ID)
		}
	})

	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/auth/signup", s.handleSignUp)
	s.mux.HandleFunc("POST /api/auth/signin", s.handleSignIn)
	s.mux.HandleFunc("POST /api/auth/signout", s.withUser(s.handleSignOut))

	s.mux.HandleFunc("GET /api/expenses", s.withUser(s.handleListExpenses))
	s.mux.HandleFunc("POST /api/expenses", s.withUser(s.handleCreateExpense))
	s.mux.HandleFunc("PUT /api/expenses/{id}", s.withUser(s.handleUpdateExpense))
	s.mux.HandleFunc("DELETE /api/expenses/{id}", s.withUser(s.handleDeleteExpense))

	s.mux.HandleFunc("GET /api/overview", s.withUser(s.handleOverview))
	s.mux.HandleFunc("PUT /api/budget", s.withUser(s.handleSaveBudget))
	s.mux.HandleFunc("PUT /api/income", s.withUser(s.handleSaveIncome))

	s.mux.HandleFunc("GET /api/analytics", s.withUser(s.handleAnalytics))
	s.mux.HandleFunc("GET /api/analytics/chart", s.withUser(s.handleAnalyticsChart))
}

// Handler возвращает корневой обработчик с логированием запросов
func (s *Server) Handler() http.Handler {
	return requestLog(s.mux)
}
