package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yotayard/yotayard/internal/domain"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (listing_id, payer_id, stripe_checkout_id, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, listing_id, payer_id, stripe_checkout_id, amount_cents, status, created_at`,
		p.ListingID, p.PayerID, p.StripeCheckoutID, p.AmountCents, p.Status)

	var created domain.Payment
	err := row.Scan(&created.ID, &created.ListingID, &created.PayerID,
		&created.StripeCheckoutID, &created.AmountCents, &created.Status, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return &created, nil
}

func (r *PaymentRepository) MarkPaymentPaid(ctx context.Context, listingID, payerID, checkoutID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments
		SET    status = 'paid', stripe_checkout_id = $3
		WHERE  listing_id = $1 AND payer_id = $2 AND status = 'initiated'`,
		listingID, payerID, checkoutID)
	if err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Stripe may deliver the same event more than once. Distinguish
		// a replay (row already paid) from a genuinely missing payment.
		row := r.pool.QueryRow(ctx, `
			SELECT 1 FROM payments
			WHERE listing_id = $1 AND payer_id = $2 AND status = 'paid'
			LIMIT 1`, listingID, payerID)
		var one int
		if scanErr := row.Scan(&one); scanErr == nil {
			return domain.ErrPaymentAlreadyPaid
		} else if !errors.Is(scanErr, pgx.ErrNoRows) {
			return fmt.Errorf("check paid payment: %w", scanErr)
		}
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (listing_id, buyer_id, seller_id, stripe_payment_intent_id, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, listing_id, buyer_id, seller_id, stripe_payment_intent_id, amount_cents, status, created_at`,
		o.ListingID, o.BuyerID, o.SellerID, o.StripePaymentIntentID, o.AmountCents, o.Status)

	var created domain.Order
	err := row.Scan(&created.ID, &created.ListingID, &created.BuyerID, &created.SellerID,
		&created.StripePaymentIntentID, &created.AmountCents, &created.Status, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &created, nil
}

func (r *PaymentRepository) HasPaidOrder(ctx context.Context, listingID, buyerID string) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT 1 FROM orders
		WHERE listing_id = $1 AND buyer_id = $2 AND status = 'paid'
		LIMIT 1`, listingID, buyerID)

	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check paid order: %w", err)
	}
	return true, nil
}
