// Package api is the HTTP client for the Phoenix authentication service.
// Token endpoints (login, register, refresh) go out on a plain client;
// everything else goes through an authorized client whose transport attaches
// the access token and retries once after a refresh (see transport.go).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/phoenix-letters/phoenix-go/internal/client/auth"
	"github.com/phoenix-letters/phoenix-go/internal/common"
	"github.com/phoenix-letters/phoenix-go/internal/logging"
)

type Client struct {
	baseURL string
	authed  *http.Client
	plain   *http.Client
	mgr     *auth.Manager
	log     logging.Logger
}

// NewClient builds a Client for the API at baseURL. The returned client
// implements auth.Refresher; hand it to the manager with SetRefresher to
// complete the wiring:
//
//	mgr := auth.NewManager(store, notifier, settings, log)
//	apiClient := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, mgr, log)
//	mgr.SetRefresher(apiClient)
func NewClient(baseURL string, timeout time.Duration, mgr *auth.Manager, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		authed: &http.Client{
			Timeout:   timeout,
			Transport: newAuthTransport(nil, mgr, log),
		},
		plain: &http.Client{Timeout: timeout},
		mgr:   mgr,
		log:   log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Objective string `json:"objective"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// User is the profile returned by /auth/me.
type User struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Objective string `json:"objective"`
}

// Login authenticates with email and password and installs the granted
// session in the manager.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	var resp tokenResponse
	err := c.doJSON(ctx, c.plain, http.MethodPost, "/auth/login",
		loginRequest{Email: email, Password: string(password)}, &resp)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := c.mgr.SetSession(grant(&resp)); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// Register creates an account. Registration implicitly logs in: the granted
// session is installed just like after Login.
func (c *Client) Register(ctx context.Context, name, email string, password []byte, objective string) error {
	var resp tokenResponse
	err := c.doJSON(ctx, c.plain, http.MethodPost, "/auth/register",
		registerRequest{Name: name, Email: email, Password: string(password), Objective: objective}, &resp)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := c.mgr.SetSession(grant(&resp)); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// RefreshTokens implements auth.Refresher. It does not touch the manager;
// the manager decides what to do with the grant.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*auth.GrantedTokens, error) {
	var resp tokenResponse
	err := c.doJSON(ctx, c.plain, http.MethodPost, "/auth/refresh",
		refreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return grant(&resp), nil
}

// Me fetches the current user's profile over the authorized client.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.doJSON(ctx, c.authed, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &u, nil
}

func grant(resp *tokenResponse) *auth.GrantedTokens {
	return &auth.GrantedTokens{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		UserID:       resp.UserID,
		Email:        resp.Email,
	}
}

// errorBody is the error payload shape the API uses.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *Client) doJSON(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Detail
		if msg == "" {
			msg = eb.Message
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
