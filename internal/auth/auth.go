package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/ivanoskov/fivest/internal/model"
)

// Event — тип события изменения состояния аутентификации
type Event string

const (
	EventSignedIn  Event = "SIGNED_IN"
	EventSignedOut Event = "SIGNED_OUT"
)

// Listener получает уведомления об изменении состояния аутентификации
type Listener func(event Event, user *model.User)

// api — срез клиента gotrue, который использует провайдер
type api interface {
	Signup(req types.SignupRequest) (*types.SignupResponse, error)
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
	GetUser() (*types.UserResponse, error)
	Logout() error
}

// Provider — явный объект сессионного сервиса вместо глобального состояния.
// Создается при старте, подписчики уведомляются о входе и выходе.
type Provider struct {
	client api
	scoped func(token string) api

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewProvider создает провайдер поверх gotrue-сервиса проекта Supabase
func NewProvider(projectRef, apiKey string) *Provider {
	client := gotrue.New(projectRef, apiKey)
	return &Provider{
		client: client,
		scoped: func(token string) api {
			return client.WithToken(token)
		},
		listeners: make(map[int]Listener),
	}
}

// newProviderWithClient используется в тестах
func newProviderWithClient(client api, scoped func(token string) api) *Provider {
	return &Provider{
		client:    client,
		scoped:    scoped,
		listeners: make(map[int]Listener),
	}
}

// OnAuthStateChange регистрирует подписчика и возвращает функцию отписки
func (p *Provider) OnAuthStateChange(fn Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

func (p *Provider) notify(event Event, user *model.User) {
	p.mu.Lock()
	listeners := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(event, user)
	}
}

// SignUp регистрирует пользователя по email и паролю; имя опционально
func (p *Provider) SignUp(ctx context.Context, email, password, fullName string) (*model.User, error) {
	req := types.SignupRequest{
		Email:    email,
		Password: password,
	}
	if fullName != "" {
		req.Data = map[string]interface{}{"full_name": fullName}
	}

	resp, err := p.client.Signup(req)
	if err != nil {
		return nil, fmt.Errorf("sign up failed: %w", err)
	}

	user := userFromGotrue(resp.User)
	return &user, nil
}

// SignIn выполняет вход по email и паролю и уведомляет подписчиков
func (p *Provider) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	resp, err := p.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in failed: %w", err)
	}

	user := userFromGotrue(resp.User)
	session := &model.Session{
		AccessToken:  resp.AccessToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    int(resp.ExpiresIn),
		RefreshToken: resp.RefreshToken,
		User:         user,
	}

	p.notify(EventSignedIn, &user)
	return session, nil
}

// SignOut завершает сессию по токену и уведомляет подписчиков,
// чтобы они сбросили состояние, привязанное к пользователю
func (p *Provider) SignOut(ctx context.Context, token string) error {
	scoped := p.scoped(token)

	// Пользователь нужен подписчикам до того, как токен станет недействительным
	var user *model.User
	if resp, err := scoped.GetUser(); err == nil {
		u := userFromGotrue(resp.User)
		user = &u
	}

	if err := scoped.Logout(); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}

	p.notify(EventSignedOut, user)
	return nil
}

// UserFromToken проверяет токен доступа и возвращает его владельца
func (p *Provider) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	resp, err := p.scoped(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	user := userFromGotrue(resp.User)
	return &user, nil
}

func userFromGotrue(u types.User) model.User {
	user := model.User{
		ID:    u.ID.String(),
		Email: u.Email,
	}
	if name, ok := u.UserMetadata["full_name"].(string); ok {
		user.FullName = name
	}
	return user
}
