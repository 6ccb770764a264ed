package domain

import "time"

// Session is the explicit session state handed to request handlers instead of
// a global auth singleton. IssuedAt/RefreshedAt/ExpiresAt give it the
// issued -> refreshed -> expired lifecycle.
type Session struct {
	Token       string    `json:"token"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	IssuedAt    time.Time `json:"issuedAt"`
	RefreshedAt time.Time `json:"refreshedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// NeedsRefresh reports whether the session is older than the refresh window
// and should be re-issued on next use. Mirrors the storefront's 7-day
// expiry / 1-day update-age policy, both taken from config.
func (s Session) NeedsRefresh(now time.Time, refreshAge time.Duration) bool {
	last := s.RefreshedAt
	if last.IsZero() {
		last = s.IssuedAt
	}
	return now.Sub(last) >= refreshAge
}
