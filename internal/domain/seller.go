package domain

import (
	"errors"
	"time"
)

var (
	ErrSellerNotFound    = errors.New("seller not found")
	ErrSignInLinkInvalid = errors.New("sign-in link is invalid or expired")
)

type Seller struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MagicToken backs the passwordless sign-in flow. Only the SHA-256 hash
// of the emailed token is stored.
type MagicToken struct {
	ID        string
	SellerID  string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
