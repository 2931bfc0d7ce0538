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

type SellerRepository struct {
	pool *pgxpool.Pool
}

func NewSellerRepository(pool *pgxpool.Pool) *SellerRepository {
	return &SellerRepository{pool: pool}
}

func (r *SellerRepository) FindOrCreate(ctx context.Context, email string) (*domain.Seller, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sellers (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id, email, created_at, updated_at`,
		email)
	return scanSeller(row)
}

func (r *SellerRepository) FindByID(ctx context.Context, id string) (*domain.Seller, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, created_at, updated_at FROM sellers WHERE id = $1`, id)
	return scanSeller(row)
}

func (r *SellerRepository) CreateMagicToken(ctx context.Context, sellerID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO magic_tokens (seller_id, token_hash, expires_at)
		VALUES ($1, $2, $3)`,
		sellerID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("create magic token: %w", err)
	}
	return nil
}

// ClaimMagicToken atomically consumes an unused, unexpired token.
func (r *SellerRepository) ClaimMagicToken(ctx context.Context, tokenHash string) (*domain.MagicToken, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE magic_tokens
		SET    used_at = NOW()
		WHERE  token_hash = $1
		  AND  used_at IS NULL
		  AND  expires_at > NOW()
		RETURNING id, seller_id, token_hash, expires_at, used_at, created_at`,
		tokenHash)

	var mt domain.MagicToken
	err := row.Scan(&mt.ID, &mt.SellerID, &mt.TokenHash, &mt.ExpiresAt, &mt.UsedAt, &mt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSignInLinkInvalid
		}
		return nil, fmt.Errorf("claim magic token: %w", err)
	}
	return &mt, nil
}

func scanSeller(row pgx.Row) (*domain.Seller, error) {
	var s domain.Seller
	err := row.Scan(&s.ID, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, fmt.Errorf("scan seller: %w", err)
	}
	return &s, nil
}
