package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/email"
	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/repository"
)

const verificationTokenTTL = 24 * time.Hour

type VerificationUsecase struct {
	tokens  repository.VerificationRepository
	email   email.Sender
	logger  *slog.Logger
	baseURL string
	now     func() time.Time
}

func NewVerificationUsecase(
	tokens repository.VerificationRepository,
	emailSender email.Sender,
	logger *slog.Logger,
	baseURL string,
) *VerificationUsecase {
	return &VerificationUsecase{
		tokens:  tokens,
		email:   emailSender,
		logger:  logger.With("component", "verification"),
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Issue mints a fresh single-use token for the listing and emails the
// verification link to its contact address. An email failure is logged
// but does not fail the caller — the listing stays in draft and the
// seller can retry.
func (u *VerificationUsecase) Issue(ctx context.Context, listingID, contactEmail string) (*domain.VerificationToken, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	expiresAt := u.now().Add(verificationTokenTTL)
	created, err := u.tokens.CreateToken(ctx, listingID, token, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("store verification token: %w", err)
	}
	metrics.VerificationsIssuedTotal.Inc()

	link := fmt.Sprintf("%s/verify/%s?token=%s", u.baseURL, listingID, token)
	subject, body := email.VerificationBody(link)
	if err := u.email.Send(ctx, contactEmail, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send verification email", "listing_id", listingID, "error", err)
	}

	return created, nil
}

// Redeem drives the draft → active transition. Checks run strictly in
// order: unknown/consumed token, expiry, listing ownership, then the
// claim and activation in one transaction. The conditional claim means
// that of two concurrent redemptions exactly one wins; an activation
// failure rolls the claim back, so the link can be retried.
func (u *VerificationUsecase) Redeem(ctx context.Context, listingID, token string) error {
	outcome := "success"
	defer func() {
		metrics.VerificationRedemptionsTotal.WithLabelValues(outcome).Inc()
	}()

	t, err := u.tokens.FindUnused(ctx, token)
	if err != nil {
		outcome = "invalid"
		if errors.Is(err, domain.ErrTokenInvalid) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("find token: %w", err)
	}

	if u.now().After(t.ExpiresAt) {
		// Terminal by expiry; the row is not mutated.
		outcome = "expired"
		return domain.ErrTokenExpired
	}

	if t.ListingID != listingID {
		outcome = "invalid"
		return domain.ErrTokenInvalid
	}

	if err := u.tokens.ClaimAndActivate(ctx, token, listingID); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			outcome = "invalid"
			return domain.ErrTokenInvalid
		}
		outcome = "activation_failed"
		u.logger.ErrorContext(ctx, "claim and activate", "listing_id", listingID, "error", err)
		return domain.ErrActivationFailed
	}

	return nil
}

// WithClock overrides the usecase clock. Test hook.
func (u *VerificationUsecase) WithClock(now func() time.Time) *VerificationUsecase {
	u.now = now
	return u
}
