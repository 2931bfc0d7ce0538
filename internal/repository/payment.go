package repository

import (
	"context"

	"github.com/yotayard/yotayard/internal/domain"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	// MarkPaymentPaid flips the seller-fee payment for (listingID, payerID)
	// to paid and records the checkout session id.
	MarkPaymentPaid(ctx context.Context, listingID, payerID, checkoutID string) error

	CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error)
	// HasPaidOrder reports whether buyerID holds a paid contact-access
	// order for listingID.
	HasPaidOrder(ctx context.Context, listingID, buyerID string) (bool, error)
}
