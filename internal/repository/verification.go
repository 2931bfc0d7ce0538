package repository

import (
	"context"
	"time"

	"github.com/yotayard/yotayard/internal/domain"
)

type VerificationRepository interface {
	CreateToken(ctx context.Context, listingID, token string, expiresAt time.Time) (*domain.VerificationToken, error)

	// FindUnused looks up a token by value where used = false. Missing,
	// mistyped and already-consumed tokens are indistinguishable:
	// all return domain.ErrTokenInvalid.
	FindUnused(ctx context.Context, token string) (*domain.VerificationToken, error)

	// ClaimAndActivate flips used to true iff it is still false, and
	// activates the listing, in a single transaction. The conditional
	// update means that under concurrent redemption exactly one caller
	// wins; the loser gets domain.ErrTokenInvalid. If activation fails
	// the claim rolls back, so the token stays redeemable.
	ClaimAndActivate(ctx context.Context, token, listingID string) error

	// PurgeExpired deletes expired, never-used tokens created before
	// cutoff. Used by the sweeper.
	PurgeExpired(ctx context.Context, cutoff time.Time, limit int) (int, error)
}
