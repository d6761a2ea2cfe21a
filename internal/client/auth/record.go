package auth

import "time"

// TokenRecord is the complete credential state of a session. It is replaced
// wholesale on refresh and destroyed on logout; no partial state (an access
// token without its refresh token, or vice versa) is ever stored.
type TokenRecord struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
}

// Complete reports whether r holds both tokens.
func (r *TokenRecord) Complete() bool {
	return r != nil && r.AccessToken != "" && r.RefreshToken != ""
}

func (r *TokenRecord) clone() *TokenRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
