package domain

import (
	"errors"
	"time"
)

// Redemption outcomes. ErrTokenInvalid deliberately covers "never
// existed", "wrong value" and "already consumed" so the response does
// not leak which one occurred.
var (
	ErrTokenInvalid     = errors.New("invalid or expired verification link")
	ErrTokenExpired     = errors.New("verification link has expired")
	ErrActivationFailed = errors.New("failed to activate listing")
)

// VerificationToken is the single-use credential emailed to a listing's
// contact address. A token is redeemable iff Used is false and the
// current time is before ExpiresAt; once consumed or expired it is
// permanently terminal.
type VerificationToken struct {
	ID        string
	ListingID string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
