package auth

import "time"

// Usable reports whether rec's access token may still be handed out, given
// that more than buffer of lifetime must remain. A nil or incomplete record
// is never usable, and a record whose expiry already passed is unusable for
// any buffer. The refresh token carries no client-side expiry check here;
// the server is authoritative for it.
func Usable(rec *TokenRecord, buffer time.Duration, now time.Time) bool {
	if !rec.Complete() {
		return false
	}
	if !now.Before(rec.ExpiresAt) {
		return false
	}
	return rec.ExpiresAt.Sub(now) > buffer
}
