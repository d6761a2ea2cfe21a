package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/phoenix-letters/phoenix-go/internal/common"
	"github.com/phoenix-letters/phoenix-go/internal/logging"
)

// GrantedTokens is what the server hands back on login, registration and
// refresh. ExpiresIn is the access token lifetime in seconds; zero means the
// server did not report one.
type GrantedTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	UserID       string
	Email        string
}

// Refresher exchanges a refresh token for a fresh token pair. Implemented by
// the API client; refresh tokens rotate on every use.
type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*GrantedTokens, error)
}

// Settings are the temporal knobs of the Manager. See config.Config for the
// meaning of each field.
type Settings struct {
	RefreshTimeout   time.Duration
	ReadBuffer       time.Duration
	SetSafetyMargin  time.Duration
	FallbackLifetime time.Duration
}

// Manager owns the session credentials. It is the only component allowed to
// mutate the Store, and it guarantees at most one refresh call is in flight
// at any instant: concurrent callers of Refresh share the pending result.
//
// Safe for concurrent use.
type Manager struct {
	store    Store
	notifier *Notifier
	settings Settings
	log      logging.Logger

	sf singleflight.Group

	mu        sync.Mutex
	epoch     uint64 // bumped on every explicit set/clear; a refresh that started under an older epoch discards its result
	refresher Refresher

	now func() time.Time // test seam
}

// NewManager wires a Manager over the given store and notifier. The
// Refresher is injected afterwards with SetRefresher, because the API client
// that implements it needs the Manager first.
func NewManager(store Store, notifier *Notifier, settings Settings, log logging.Logger) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

// SetRefresher installs the component performing the network refresh call.
func (m *Manager) SetRefresher(r Refresher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresher = r
}

// Notifier returns the failure signal collaborators may subscribe to.
func (m *Manager) Notifier() *Notifier {
	return m.notifier
}

// AccessToken returns the current access token, or an empty string when none
// is stored or less than the read buffer of its lifetime remains. It never
// returns a token known to be expired, and it does not refresh; the request
// interception layer handles that reactively.
func (m *Manager) AccessToken() string {
	rec := m.store.Get()
	if !Usable(rec, m.settings.ReadBuffer, m.now()) {
		return ""
	}
	return rec.AccessToken
}

// HasValidTokens reports whether a complete session (access + refresh token)
// is stored. The access token itself may be expired; it is still refreshable.
func (m *Manager) HasValidTokens() bool {
	return m.store.Get().Complete()
}

// Email returns the email of the current session, or "".
func (m *Manager) Email() string {
	rec := m.store.Get()
	if rec == nil {
		return ""
	}
	return rec.Email
}

// UserID returns the user id of the current session, or "".
func (m *Manager) UserID() string {
	rec := m.store.Get()
	if rec == nil {
		return ""
	}
	return rec.UserID
}

// SetSession replaces the stored credentials with freshly granted ones, e.g.
// after login or registration. Identity fields missing from the grant are
// carried over from the previous record.
func (m *Manager) SetSession(g *GrantedTokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	return m.store.Set(m.buildRecord(g, m.store.Get()))
}

// Logout clears the session and announces it. Clearing always wins over any
// refresh still in flight.
func (m *Manager) Logout() error {
	if err := m.clear(); err != nil {
		return err
	}
	m.notifier.Emit(ReasonLoggedOut)
	return nil
}

// ForceLogout clears the session after an unrecoverable auth failure and
// emits the given reason. Used by the request interception layer.
func (m *Manager) ForceLogout(reason Reason) {
	if err := m.clear(); err != nil {
		m.log.Error(context.Background(), "clearing session failed", "err", err)
	}
	m.notifier.Emit(reason)
}

func (m *Manager) clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	return m.store.Clear()
}

// Refresh exchanges the stored refresh token for a new pair and returns the
// new access token. Concurrent calls collapse into a single network request
// whose outcome every caller receives. On any failure the session is cleared
// and the failure signal emitted; refresh errors are never retried.
//
// The network call runs under its own timeout (Settings.RefreshTimeout),
// detached from ctx, so one caller's cancellation cannot abort the flight
// that other callers are waiting on.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	ch := m.sf.DoChan("refresh", func() (any, error) {
		return m.doRefresh()
	})

	select {
	case <-ctx.Done():
		// The flight keeps running for the other waiters.
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (m *Manager) doRefresh() (string, error) {
	m.mu.Lock()
	refresher := m.refresher
	startEpoch := m.epoch
	m.mu.Unlock()

	rec := m.store.Get()
	if rec == nil || rec.RefreshToken == "" {
		m.ForceLogout(ReasonRefreshFailed)
		return "", common.ErrNoRefreshToken
	}
	if refresher == nil {
		m.ForceLogout(ReasonRefreshFailed)
		return "", fmt.Errorf("%w: no refresher configured", common.ErrRefreshFailed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.settings.RefreshTimeout)
	defer cancel()

	granted, err := refresher.RefreshTokens(ctx, rec.RefreshToken)
	if err != nil {
		m.log.Warn(ctx, "token refresh failed", "err", err)
		m.ForceLogout(ReasonRefreshFailed)
		return "", fmt.Errorf("%w: %v", common.ErrRefreshFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != startEpoch {
		// The session was cleared (or replaced) while the call was in
		// flight; that intent wins over the late-arriving tokens.
		m.log.Info(ctx, "session changed during refresh, discarding rotated tokens")
		return granted.AccessToken, nil
	}

	if err := m.store.Set(m.buildRecord(granted, rec)); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRefreshFailed, err)
	}
	return granted.AccessToken, nil
}

// buildRecord assembles the record to store for a grant, computing the local
// expiry and carrying identity over from prev when the grant omits it.
func (m *Manager) buildRecord(g *GrantedTokens, prev *TokenRecord) *TokenRecord {
	rec := &TokenRecord{
		AccessToken:  g.AccessToken,
		RefreshToken: g.RefreshToken,
		ExpiresAt:    m.expiresAt(g),
		UserID:       g.UserID,
		Email:        g.Email,
	}
	if prev != nil {
		if rec.UserID == "" {
			rec.UserID = prev.UserID
		}
		if rec.Email == "" {
			rec.Email = prev.Email
		}
	}
	return rec
}

// expiresAt computes the local expiry of a grant. The server-reported
// expires_in is authoritative; when absent, the access token's own exp claim
// is used, and only as a last resort the configured fallback lifetime. The
// safety margin is subtracted in every case.
func (m *Manager) expiresAt(g *GrantedTokens) time.Time {
	now := m.now()

	if g.ExpiresIn > 0 {
		return now.Add(time.Duration(g.ExpiresIn)*time.Second - m.settings.SetSafetyMargin)
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(g.AccessToken, &claims); err == nil {
		if claims.ExpiresAt != nil {
			return claims.ExpiresAt.Add(-m.settings.SetSafetyMargin)
		}
	}

	return now.Add(m.settings.FallbackLifetime - m.settings.SetSafetyMargin)
}
