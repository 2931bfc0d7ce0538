package repository

import (
	"context"
	"time"

	"github.com/yotayard/yotayard/internal/domain"
)

type SellerRepository interface {
	FindOrCreate(ctx context.Context, email string) (*domain.Seller, error)
	FindByID(ctx context.Context, id string) (*domain.Seller, error)
	CreateMagicToken(ctx context.Context, sellerID, tokenHash string, expiresAt time.Time) error
	ClaimMagicToken(ctx context.Context, tokenHash string) (*domain.MagicToken, error)
}
