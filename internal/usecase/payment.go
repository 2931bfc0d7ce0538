package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v76"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/repository"
)

var ErrNotListingOwner = errors.New("listing does not belong to this seller")

// CheckoutClient is the slice of the Stripe SDK the usecase needs, so
// tests can run without the real API.
type CheckoutClient interface {
	NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type PaymentUsecase struct {
	payments repository.PaymentRepository
	listings repository.ListingRepository
	checkout CheckoutClient
	logger   *slog.Logger

	sellerFeeCents int64
	buyerFeeCents  int64
	baseURL        string
}

func NewPaymentUsecase(
	payments repository.PaymentRepository,
	listings repository.ListingRepository,
	checkout CheckoutClient,
	logger *slog.Logger,
	sellerFeeCents, buyerFeeCents int64,
	baseURL string,
) *PaymentUsecase {
	return &PaymentUsecase{
		payments:       payments,
		listings:       listings,
		checkout:       checkout,
		logger:         logger.With("component", "payments"),
		sellerFeeCents: sellerFeeCents,
		buyerFeeCents:  buyerFeeCents,
		baseURL:        baseURL,
	}
}

func (u *PaymentUsecase) newSession(name string, amountCents int64, metadata map[string]string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(u.baseURL + "/checkout/success"),
		CancelURL:  stripe.String(u.baseURL + "/checkout/cancelled"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
				UnitAmount: stripe.Int64(amountCents),
			},
			Quantity: stripe.Int64(1),
		}},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return u.checkout.NewSession(params)
}

// CreateSellerFeeCheckout starts the flat listing-fee payment for a
// draft listing and records the pending payment row. Returns the
// hosted checkout URL.
func (u *PaymentUsecase) CreateSellerFeeCheckout(ctx context.Context, listingID, sellerID string) (string, error) {
	listing, err := u.listings.GetByID(ctx, listingID)
	if err != nil {
		return "", fmt.Errorf("get listing: %w", err)
	}
	if listing.SellerID != sellerID {
		return "", ErrNotListingOwner
	}

	sess, err := u.newSession("Listing fee", u.sellerFeeCents, map[string]string{
		"type":       "seller_fee",
		"listing_id": listingID,
		"user_id":    sellerID,
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	if _, err := u.payments.CreatePayment(ctx, &domain.Payment{
		ListingID:        listingID,
		PayerID:          sellerID,
		StripeCheckoutID: sess.ID,
		AmountCents:      u.sellerFeeCents,
		Status:           domain.PaymentInitiated,
	}); err != nil {
		return "", fmt.Errorf("record payment: %w", err)
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("seller_fee").Inc()
	return sess.URL, nil
}

// CreateBuyerFeeCheckout starts the contact-access payment for an
// active listing. Returns the hosted checkout URL.
func (u *PaymentUsecase) CreateBuyerFeeCheckout(ctx context.Context, listingID, buyerID string) (string, error) {
	listing, err := u.listings.GetByID(ctx, listingID)
	if err != nil {
		return "", fmt.Errorf("get listing: %w", err)
	}
	if listing.Status != domain.ListingActive {
		return "", domain.ErrListingNotFound
	}

	sess, err := u.newSession("Contact access", u.buyerFeeCents, map[string]string{
		"type":       "buyer_fee",
		"listing_id": listingID,
		"buyer_id":   buyerID,
		"seller_id":  listing.SellerID,
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("buyer_fee").Inc()
	return sess.URL, nil
}

// HandleCheckoutCompleted applies the effects of a completed checkout
// session, dispatched on the metadata "type" the sessions were created
// with. Stripe delivers events at-least-once, so replays of a session
// already applied must be acknowledged, not failed: a returned error
// makes the webhook respond non-2xx and Stripe retry forever. Unknown
// types are logged and acknowledged for the same reason.
func (u *PaymentUsecase) HandleCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	switch sess.Metadata["type"] {
	case "seller_fee":
		listingID := sess.Metadata["listing_id"]
		sellerID := sess.Metadata["user_id"]

		if err := u.payments.MarkPaymentPaid(ctx, listingID, sellerID, sess.ID); err != nil {
			if errors.Is(err, domain.ErrPaymentAlreadyPaid) {
				u.logger.InfoContext(ctx, "duplicate seller fee event, already paid",
					"listing_id", listingID, "session_id", sess.ID)
				return nil
			}
			return fmt.Errorf("mark payment paid: %w", err)
		}
		if err := u.listings.Activate(ctx, listingID); err != nil {
			return fmt.Errorf("activate listing: %w", err)
		}
		u.logger.InfoContext(ctx, "listing activated after seller fee",
			"listing_id", listingID, "seller_id", sellerID)

	case "buyer_fee":
		listingID := sess.Metadata["listing_id"]
		buyerID := sess.Metadata["buyer_id"]

		paid, err := u.payments.HasPaidOrder(ctx, listingID, buyerID)
		if err != nil {
			return fmt.Errorf("check order: %w", err)
		}
		if paid {
			u.logger.InfoContext(ctx, "duplicate buyer fee event, order exists",
				"listing_id", listingID, "session_id", sess.ID)
			return nil
		}

		var intentID string
		if sess.PaymentIntent != nil {
			intentID = sess.PaymentIntent.ID
		}
		if _, err := u.payments.CreateOrder(ctx, &domain.Order{
			ListingID:             listingID,
			BuyerID:               buyerID,
			SellerID:              sess.Metadata["seller_id"],
			StripePaymentIntentID: intentID,
			AmountCents:           u.buyerFeeCents,
			Status:                domain.PaymentPaid,
		}); err != nil {
			return fmt.Errorf("record order: %w", err)
		}
		u.logger.InfoContext(ctx, "buyer fee paid",
			"listing_id", listingID, "buyer_id", buyerID)

	default:
		u.logger.WarnContext(ctx, "checkout session with unknown type", "session_id", sess.ID)
	}

	return nil
}
