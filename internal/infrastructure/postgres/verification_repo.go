package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yotayard/yotayard/internal/domain"
)

type VerificationRepository struct {
	pool *pgxpool.Pool
}

func NewVerificationRepository(pool *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{pool: pool}
}

func (r *VerificationRepository) CreateToken(ctx context.Context, listingID, token string, expiresAt time.Time) (*domain.VerificationToken, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listing_verification_tokens (listing_id, token, expires_at, used)
		VALUES ($1, $2, $3, false)
		RETURNING id, listing_id, token, expires_at, used, created_at`,
		listingID, token, expiresAt)

	var t domain.VerificationToken
	err := row.Scan(&t.ID, &t.ListingID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create verification token: %w", err)
	}
	return &t, nil
}

func (r *VerificationRepository) FindUnused(ctx context.Context, token string) (*domain.VerificationToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, listing_id, token, expires_at, used, created_at
		FROM listing_verification_tokens
		WHERE token = $1 AND used = false`, token)

	var t domain.VerificationToken
	err := row.Scan(&t.ID, &t.ListingID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &t, nil
}

// ClaimAndActivate consumes the token and activates the listing in one
// transaction. The claim is a compare-and-swap on used: of two
// concurrent redemptions only one update reports an affected row. If
// the activation update fails, the rollback leaves the token unused.
func (r *VerificationRepository) ClaimAndActivate(ctx context.Context, token, listingID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin claim: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE listing_verification_tokens
		SET    used = true
		WHERE  token = $1 AND used = false`, token)
	if err != nil {
		return fmt.Errorf("claim token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTokenInvalid
	}

	tag, err = tx.Exec(ctx, `
		UPDATE listings SET status = 'active', updated_at = NOW() WHERE id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("activate listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit claim: %w", err)
	}
	return nil
}

func (r *VerificationRepository) PurgeExpired(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM listing_verification_tokens
		WHERE id IN (
			SELECT id FROM listing_verification_tokens
			WHERE  expires_at < $1
			ORDER BY expires_at ASC
			LIMIT $2
		)`, cutoff, limit)
	return int(tag.RowsAffected()), err
}
