// Package services contains application services for the Phoenix client.
// This file defines the authentication service: register, login, logout,
// current-user lookup, and session inspection.
package services

import (
	"context"
	"fmt"

	"github.com/phoenix-letters/phoenix-go/internal/client/api"
	"github.com/phoenix-letters/phoenix-go/internal/client/auth"
)

// Authenticator is the slice of the API client the auth service needs.
type Authenticator interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, name, email string, password []byte, objective string) error
	Me(ctx context.Context) (*api.User, error)
}

// AuthService defines authentication operations for the CLI and other
// collaborators.
//
// Contract:
//   - Login: authenticate against the server; the session is persisted.
//   - Register: create an account; registration implicitly logs in.
//   - Logout: destroy the session locally and announce it.
//   - CurrentUser: fetch the profile of the signed-in user.
//   - HasSession / Email: inspect the current session without network calls.
//   - OnSessionEnd: subscribe to forced-logout and logout signals.
//
// All methods taking a context must honor cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, name, email string, password []byte, objective string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*api.User, error)
	HasSession() bool
	Email() string
	OnSessionEnd(fn func(auth.Reason)) (unsubscribe func())
}

// authService is the concrete AuthService backed by the API client and the
// token manager.
type authService struct {
	client Authenticator
	mgr    *auth.Manager
}

// NewAuthService constructs an AuthService bound to the given API client and
// token manager.
func NewAuthService(client Authenticator, mgr *auth.Manager) AuthService {
	return &authService{client: client, mgr: mgr}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	if err := a.client.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte, objective string) error {
	if err := a.client.Register(ctx, name, email, password, objective); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Logout destroys the local session. The server is not called; refresh
// tokens rotate on use, so an abandoned pair goes stale on its own.
func (a *authService) Logout(ctx context.Context) error {
	return a.mgr.Logout()
}

func (a *authService) CurrentUser(ctx context.Context) (*api.User, error) {
	u, err := a.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}

func (a *authService) HasSession() bool {
	return a.mgr.HasValidTokens()
}

func (a *authService) Email() string {
	return a.mgr.Email()
}

func (a *authService) OnSessionEnd(fn func(auth.Reason)) func() {
	return a.mgr.Notifier().Subscribe(fn)
}
