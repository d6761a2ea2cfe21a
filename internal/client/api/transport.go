package api

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/phoenix-letters/phoenix-go/internal/client/auth"
	"github.com/phoenix-letters/phoenix-go/internal/common"
	"github.com/phoenix-letters/phoenix-go/internal/logging"
)

// authTransport decorates an http.RoundTripper with the credential
// lifecycle: it attaches the current access token (when one is usable) and a
// correlation id to every request, and on a 401 it performs exactly one
// coordinated refresh followed by one replay of the original request. A
// second 401 after the replay means the session is dead: it is cleared and
// the failure signal emitted. There is never more than one retry per
// request.
type authTransport struct {
	base http.RoundTripper
	mgr  *auth.Manager
	log  logging.Logger
}

func newAuthTransport(base http.RoundTripper, mgr *auth.Manager, log logging.Logger) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, mgr: mgr, log: log}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqID := uuid.NewString()

	r := req.Clone(req.Context())
	r.Header.Set(common.RequestIDHeader, reqID)
	if tok := t.mgr.AccessToken(); tok != "" {
		r.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// A request whose body cannot be rebuilt is never replayed.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	tok, rerr := t.mgr.Refresh(req.Context())
	if rerr != nil {
		// The manager already cleared the session and notified; the caller
		// sees the original 401.
		t.log.Debug(req.Context(), "refresh after 401 failed", "request_id", reqID, "err", rerr)
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	r2 := req.Clone(req.Context())
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, berr
		}
		r2.Body = body
	}
	r2.Header.Set(common.RequestIDHeader, reqID)
	r2.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)

	resp2, err := t.base.RoundTrip(r2)
	if err != nil {
		return nil, err
	}
	if resp2.StatusCode == http.StatusUnauthorized {
		t.log.Warn(req.Context(), "request unauthorized after refresh, ending session", "request_id", reqID)
		t.mgr.ForceLogout(auth.ReasonUnauthorized)
	}
	return resp2, nil
}
