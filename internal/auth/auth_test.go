package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/ivanoskov/fivest/internal/model"
)

// fakeAPI — заглушка среза клиента gotrue
type fakeAPI struct {
	user        types.User
	token       string
	logoutCalls int
	getUserErr  error
	signInErr   error
}

func (f *fakeAPI) Signup(req types.SignupRequest) (*types.SignupResponse, error) {
	user := f.user
	user.Email = req.Email
	if req.Data != nil {
		user.UserMetadata = req.Data
	}
	return &types.SignupResponse{User: user}, nil
}

func (f *fakeAPI) SignInWithEmailPassword(email, password string) (*types.TokenResponse, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &types.TokenResponse{
		Session: types.Session{
			AccessToken:  f.token,
			TokenType:    "bearer",
			ExpiresIn:    3600,
			RefreshToken: "refresh",
			User:         f.user,
		},
	}, nil
}

func (f *fakeAPI) GetUser() (*types.UserResponse, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	return &types.UserResponse{User: f.user}, nil
}

func (f *fakeAPI) Logout() error {
	f.logoutCalls++
	return nil
}

func newTestProvider(client *fakeAPI) *Provider {
	return newProviderWithClient(client, func(token string) api { return client })
}

func testUser() types.User {
	return types.User{
		ID:           uuid.MustParse("4f5b1c6e-0a1b-4c2d-8e3f-9a0b1c2d3e4f"),
		Email:        "user@example.com",
		UserMetadata: map[string]interface{}{"full_name": "Test User"},
	}
}

func TestSignUpMapsUser(t *testing.T) {
	client := &fakeAPI{user: testUser()}
	provider := newTestProvider(client)

	user, err := provider.SignUp(context.Background(), "new@example.com", "secret", "New User")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "New User", user.FullName)
	assert.NotEmpty(t, user.ID)
}

func TestSignInNotifiesListeners(t *testing.T) {
	client := &fakeAPI{user: testUser(), token: "access-token"}
	provider := newTestProvider(client)

	var events []Event
	provider.OnAuthStateChange(func(event Event, user *model.User) {
		events = append(events, event)
	})

	session, err := provider.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "access-token", session.AccessToken)
	assert.Equal(t, "user@example.com", session.User.Email)
	assert.Equal(t, []Event{EventSignedIn}, events)
}

func TestSignInErrorDoesNotNotify(t *testing.T) {
	client := &fakeAPI{user: testUser(), signInErr: fmt.Errorf("invalid credentials")}
	provider := newTestProvider(client)

	notified := false
	provider.OnAuthStateChange(func(Event, *model.User) { notified = true })

	_, err := provider.SignIn(context.Background(), "user@example.com", "wrong")
	assert.Error(t, err)
	assert.False(t, notified)
}

func TestSignOutNotifiesWithUser(t *testing.T) {
	client := &fakeAPI{user: testUser()}
	provider := newTestProvider(client)

	var gotEvent Event
	var gotUser *model.User
	provider.OnAuthStateChange(func(event Event, user *model.User) {
		gotEvent = event
		gotUser = user
	})

	require.NoError(t, provider.SignOut(context.Background(), "access-token"))

	assert.Equal(t, 1, client.logoutCalls)
	assert.Equal(t, EventSignedOut, gotEvent)
	require.NotNil(t, gotUser)
	assert.Equal(t, "user@example.com", gotUser.Email)
}

// Выход работает, даже если владельца токена уже не определить
func TestSignOutWithoutUser(t *testing.T) {
	client := &fakeAPI{user: testUser(), getUserErr: fmt.Errorf("token expired")}
	provider := newTestProvider(client)

	var gotUser *model.User
	notified := false
	provider.OnAuthStateChange(func(event Event, user *model.User) {
		notified = true
		gotUser = user
	})

	require.NoError(t, provider.SignOut(context.Background(), "access-token"))
	assert.True(t, notified)
	assert.Nil(t, gotUser)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	client := &fakeAPI{user: testUser(), token: "access-token"}
	provider := newTestProvider(client)

	calls := 0
	unsubscribe := provider.OnAuthStateChange(func(Event, *model.User) { calls++ })

	_, err := provider.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	unsubscribe()

	_, err = provider.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestUserFromToken(t *testing.T) {
	client := &fakeAPI{user: testUser()}
	provider := newTestProvider(client)

	user, err := provider.UserFromToken(context.Background(), "access-token")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "Test User", user.FullName)
}

func TestUserFromTokenInvalid(t *testing.T) {
	client := &fakeAPI{user: testUser(), getUserErr: fmt.Errorf("token expired")}
	provider := newTestProvider(client)

	_, err := provider.UserFromToken(context.Background(), "bogus")
	assert.Error(t, err)
}
