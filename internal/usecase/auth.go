package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/email"
	"github.com/yotayard/yotayard/internal/repository"
)

const (
	magicTokenTTL = 15 * time.Minute
	sessionJWTTTL = 24 * time.Hour
)

type AuthUsecase struct {
	sellers repository.SellerRepository
	email   email.Sender
	jwtKey  []byte
	baseURL string
}

func NewAuthUsecase(sellers repository.SellerRepository, emailSender email.Sender, jwtKey []byte, baseURL string) *AuthUsecase {
	return &AuthUsecase{
		sellers: sellers,
		email:   emailSender,
		jwtKey:  jwtKey,
		baseURL: baseURL,
	}
}

// RequestMagicLink finds or creates the seller, generates a secure
// token, stores its hash, and emails the sign-in link.
func (u *AuthUsecase) RequestMagicLink(ctx context.Context, emailAddr string) error {
	seller, err := u.sellers.FindOrCreate(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("find or create seller: %w", err)
	}

	raw := make([]byte, 32)
	if _, err = io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	rawToken := hex.EncodeToString(raw)
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	expiresAt := time.Now().Add(magicTokenTTL)
	if err = u.sellers.CreateMagicToken(ctx, seller.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("store magic token: %w", err)
	}

	link := u.baseURL + "/auth/verify?token=" + rawToken
	subject, body := email.MagicLinkBody(link)
	if err = u.email.Send(ctx, emailAddr, subject, body); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

// VerifyMagicLink hashes the raw token, atomically claims it, and
// returns a signed session JWT.
func (u *AuthUsecase) VerifyMagicLink(ctx context.Context, rawToken string) (string, error) {
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	mt, err := u.sellers.ClaimMagicToken(ctx, tokenHash)
	if err != nil {
		return "", domain.ErrSignInLinkInvalid
	}

	seller, err := u.sellers.FindByID(ctx, mt.SellerID)
	if err != nil {
		return "", fmt.Errorf("find seller: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   seller.ID,
		"email": seller.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionJWTTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
