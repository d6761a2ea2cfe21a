package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-letters/phoenix-go/internal/client/api"
	"github.com/phoenix-letters/phoenix-go/internal/client/auth"
	"github.com/phoenix-letters/phoenix-go/internal/logging"
)

// ---- fake client ----

// fakeClient implements Authenticator for AuthService unit tests.
type fakeClient struct {
	// preset behavior
	LoginErr    error
	RegisterErr error
	MeRet       *api.User
	MeErr       error

	// captured arguments
	LastLoginEmail    string
	LastLoginPassword []byte

	LastRegisterName      string
	LastRegisterEmail     string
	LastRegisterObjective string
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) error {
	f.LastLoginEmail = email
	f.LastLoginPassword = append([]byte(nil), password...)
	return f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email string, password []byte, objective string) error {
	f.LastRegisterName = name
	f.LastRegisterEmail = email
	f.LastRegisterObjective = objective
	return f.RegisterErr
}

func (f *fakeClient) Me(ctx context.Context) (*api.User, error) {
	return f.MeRet, f.MeErr
}

func newTestService(t *testing.T, f *fakeClient) (AuthService, *auth.Manager, *auth.MemStore) {
	t.Helper()
	store := auth.NewMemStore()
	mgr := auth.NewManager(store, auth.NewNotifier(), auth.Settings{
		RefreshTimeout:   time.Second,
		ReadBuffer:       time.Minute,
		FallbackLifetime: 14 * time.Minute,
	}, logging.NewNop())
	return NewAuthService(f, mgr), mgr, store
}

// ---- TESTS ----

func TestAuthService_Login_PassesCredentials(t *testing.T) {
	f := &fakeClient{}
	svc, _, _ := newTestService(t, f)

	err := svc.Login(context.Background(), "user@example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", f.LastLoginEmail)
	assert.Equal(t, []byte("pw"), f.LastLoginPassword)
}

func TestAuthService_Login_WrapsError(t *testing.T) {
	sentinel := errors.New("boom")
	svc, _, _ := newTestService(t, &fakeClient{LoginErr: sentinel})

	err := svc.Login(context.Background(), "user@example.com", []byte("pw"))
	require.ErrorIs(t, err, sentinel)
}

func TestAuthService_Register_PassesFields(t *testing.T) {
	f := &fakeClient{}
	svc, _, _ := newTestService(t, f)

	err := svc.Register(context.Background(), "Ada", "ada@example.com", []byte("pw"), "career change")
	require.NoError(t, err)
	assert.Equal(t, "Ada", f.LastRegisterName)
	assert.Equal(t, "ada@example.com", f.LastRegisterEmail)
	assert.Equal(t, "career change", f.LastRegisterObjective)
}

func TestAuthService_Logout_ClearsSessionAndNotifies(t *testing.T) {
	svc, _, store := newTestService(t, &fakeClient{})
	require.NoError(t, store.Set(&auth.TokenRecord{
		AccessToken:  "A1",
		RefreshToken: "R1",
		ExpiresAt:    time.Now().Add(time.Hour),
		Email:        "user@example.com",
	}))

	var gotReason auth.Reason
	svc.OnSessionEnd(func(r auth.Reason) { gotReason = r })

	require.True(t, svc.HasSession())
	assert.Equal(t, "user@example.com", svc.Email())

	require.NoError(t, svc.Logout(context.Background()))

	assert.False(t, svc.HasSession())
	assert.Equal(t, "", svc.Email())
	assert.Equal(t, auth.ReasonLoggedOut, gotReason)
	assert.Nil(t, store.Get())
}

func TestAuthService_CurrentUser(t *testing.T) {
	want := &api.User{UserID: "u-1", Email: "user@example.com", Name: "Ada"}
	svc, _, _ := newTestService(t, &fakeClient{MeRet: want})

	got, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAuthService_CurrentUser_WrapsError(t *testing.T) {
	sentinel := errors.New("down")
	svc, _, _ := newTestService(t, &fakeClient{MeErr: sentinel})

	_, err := svc.CurrentUser(context.Background())
	require.ErrorIs(t, err, sentinel)
}
