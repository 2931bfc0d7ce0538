package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stripe/stripe-go/v76"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/usecase"
)

const (
	testSellerFee = int64(4900)
	testBuyerFee  = int64(9900)
)

type fakeCheckout struct {
	newSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func (f *fakeCheckout) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return f.newSession(params)
}

func newPaymentUsecase(payments *fakePaymentRepo, listings *fakeListingRepo, checkout *fakeCheckout) *usecase.PaymentUsecase {
	return usecase.NewPaymentUsecase(payments, listings, checkout, slog.Default(), testSellerFee, testBuyerFee, testBaseURL)
}

func TestCreateSellerFeeCheckout_RecordsPendingPayment(t *testing.T) {
	var sessionParams *stripe.CheckoutSessionParams
	var recorded *domain.Payment

	listings := &fakeListingRepo{
		getByID: func(_ context.Context, id string) (*domain.Listing, error) {
			return &domain.Listing{ID: id, SellerID: "seller-1", Status: domain.ListingDraft}, nil
		},
	}
	checkout := &fakeCheckout{
		newSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			sessionParams = params
			return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1"}, nil
		},
	}
	payments := &fakePaymentRepo{
		createPayment: func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
			recorded = p
			return p, nil
		},
	}

	url, err := newPaymentUsecase(payments, listings, checkout).
		CreateSellerFeeCheckout(context.Background(), "listing-1", "seller-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://checkout.stripe.test/cs_1" {
		t.Errorf("url = %q", url)
	}

	if got := *sessionParams.LineItems[0].PriceData.UnitAmount; got != testSellerFee {
		t.Errorf("unit amount = %d, want %d", got, testSellerFee)
	}
	meta := sessionParams.Metadata
	if meta["type"] != "seller_fee" || meta["listing_id"] != "listing-1" || meta["user_id"] != "seller-1" {
		t.Errorf("metadata = %v", meta)
	}

	if recorded == nil {
		t.Fatal("no payment recorded")
	}
	if recorded.StripeCheckoutID != "cs_1" || recorded.Status != domain.PaymentInitiated || recorded.AmountCents != testSellerFee {
		t.Errorf("payment = %+v", recorded)
	}
}

func TestCreateSellerFeeCheckout_RejectsNonOwner(t *testing.T) {
	listings := &fakeListingRepo{
		getByID: func(_ context.Context, id string) (*domain.Listing, error) {
			return &domain.Listing{ID: id, SellerID: "seller-1"}, nil
		},
	}

	_, err := newPaymentUsecase(&fakePaymentRepo{}, listings, &fakeCheckout{}).
		CreateSellerFeeCheckout(context.Background(), "listing-1", "someone-else")
	if !errors.Is(err, usecase.ErrNotListingOwner) {
		t.Fatalf("want ErrNotListingOwner, got %v", err)
	}
}

func TestCreateBuyerFeeCheckout_RequiresActiveListing(t *testing.T) {
	listings := &fakeListingRepo{
		getByID: func(_ context.Context, id string) (*domain.Listing, error) {
			return &domain.Listing{ID: id, SellerID: "seller-1", Status: domain.ListingDraft}, nil
		},
	}

	_, err := newPaymentUsecase(&fakePaymentRepo{}, listings, &fakeCheckout{}).
		CreateBuyerFeeCheckout(context.Background(), "listing-1", "buyer-1")
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("want ErrListingNotFound, got %v", err)
	}
}

func TestCreateBuyerFeeCheckout_TagsSessionWithParties(t *testing.T) {
	var sessionParams *stripe.CheckoutSessionParams

	listings := &fakeListingRepo{
		getByID: func(_ context.Context, id string) (*domain.Listing, error) {
			return &domain.Listing{ID: id, SellerID: "seller-1", Status: domain.ListingActive}, nil
		},
	}
	checkout := &fakeCheckout{
		newSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			sessionParams = params
			return &stripe.CheckoutSession{ID: "cs_2", URL: "https://checkout.stripe.test/cs_2"}, nil
		},
	}

	if _, err := newPaymentUsecase(&fakePaymentRepo{}, listings, checkout).
		CreateBuyerFeeCheckout(context.Background(), "listing-1", "buyer-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := sessionParams.Metadata
	if meta["type"] != "buyer_fee" || meta["listing_id"] != "listing-1" ||
		meta["buyer_id"] != "buyer-1" || meta["seller_id"] != "seller-1" {
		t.Errorf("metadata = %v", meta)
	}
	if got := *sessionParams.LineItems[0].PriceData.UnitAmount; got != testBuyerFee {
		t.Errorf("unit amount = %d, want %d", got, testBuyerFee)
	}
}

func TestHandleCheckoutCompleted_SellerFee_ActivatesListing(t *testing.T) {
	var markedListing, markedPayer, markedCheckout string
	var activated string

	payments := &fakePaymentRepo{
		markPaymentPaid: func(_ context.Context, listingID, payerID, checkoutID string) error {
			markedListing, markedPayer, markedCheckout = listingID, payerID, checkoutID
			return nil
		},
	}
	listings := &fakeListingRepo{
		activate: func(_ context.Context, id string) error {
			activated = id
			return nil
		},
	}

	sess := &stripe.CheckoutSession{
		ID: "cs_1",
		Metadata: map[string]string{
			"type":       "seller_fee",
			"listing_id": "listing-1",
			"user_id":    "seller-1",
		},
	}
	if err := newPaymentUsecase(payments, listings, &fakeCheckout{}).
		HandleCheckoutCompleted(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if markedListing != "listing-1" || markedPayer != "seller-1" || markedCheckout != "cs_1" {
		t.Errorf("marked (%q, %q, %q)", markedListing, markedPayer, markedCheckout)
	}
	if activated != "listing-1" {
		t.Errorf("activated %q, want listing-1", activated)
	}
}

func TestHandleCheckoutCompleted_BuyerFee_RecordsOrder(t *testing.T) {
	var order *domain.Order
	payments := &fakePaymentRepo{
		hasPaidOrder: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		createOrder: func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			order = o
			return o, nil
		},
	}

	sess := &stripe.CheckoutSession{
		ID:            "cs_2",
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
		Metadata: map[string]string{
			"type":       "buyer_fee",
			"listing_id": "listing-1",
			"buyer_id":   "buyer-1",
			"seller_id":  "seller-1",
		},
	}
	if err := newPaymentUsecase(payments, &fakeListingRepo{}, &fakeCheckout{}).
		HandleCheckoutCompleted(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order == nil {
		t.Fatal("no order recorded")
	}
	if order.ListingID != "listing-1" || order.BuyerID != "buyer-1" || order.SellerID != "seller-1" {
		t.Errorf("order parties = %+v", order)
	}
	if order.StripePaymentIntentID != "pi_1" || order.Status != domain.PaymentPaid || order.AmountCents != testBuyerFee {
		t.Errorf("order = %+v", order)
	}
}

// Stripe delivers events at-least-once. A replayed seller-fee event
// finds the payment already paid; it must be acknowledged without
// re-activating the listing, or the webhook 500s and Stripe retries
// the event forever.
func TestHandleCheckoutCompleted_SellerFeeReplay_Acknowledged(t *testing.T) {
	payments := &fakePaymentRepo{
		markPaymentPaid: func(_ context.Context, _, _, _ string) error {
			return domain.ErrPaymentAlreadyPaid
		},
	}
	// activate is unset: a second activation would panic the test.
	listings := &fakeListingRepo{}

	sess := &stripe.CheckoutSession{
		ID: "cs_1",
		Metadata: map[string]string{
			"type":       "seller_fee",
			"listing_id": "listing-1",
			"user_id":    "seller-1",
		},
	}
	if err := newPaymentUsecase(payments, listings, &fakeCheckout{}).
		HandleCheckoutCompleted(context.Background(), sess); err != nil {
		t.Fatalf("replayed event must be acknowledged, got %v", err)
	}
}

// A replayed buyer-fee event must not insert a second order row.
func TestHandleCheckoutCompleted_BuyerFeeReplay_NoDuplicateOrder(t *testing.T) {
	var orders int
	paid := false
	payments := &fakePaymentRepo{
		hasPaidOrder: func(_ context.Context, _, _ string) (bool, error) { return paid, nil },
		createOrder: func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			orders++
			paid = true
			return o, nil
		},
	}

	sess := &stripe.CheckoutSession{
		ID:            "cs_2",
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
		Metadata: map[string]string{
			"type":       "buyer_fee",
			"listing_id": "listing-1",
			"buyer_id":   "buyer-1",
			"seller_id":  "seller-1",
		},
	}
	uc := newPaymentUsecase(payments, &fakeListingRepo{}, &fakeCheckout{})
	for i := 0; i < 2; i++ {
		if err := uc.HandleCheckoutCompleted(context.Background(), sess); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	if orders != 1 {
		t.Errorf("orders recorded = %d, want 1", orders)
	}
}

func TestHandleCheckoutCompleted_UnknownType_Acknowledged(t *testing.T) {
	sess := &stripe.CheckoutSession{
		ID:       "cs_3",
		Metadata: map[string]string{"type": "subscription"},
	}
	// Neither repo fake has any function set: a repository call panics.
	if err := newPaymentUsecase(&fakePaymentRepo{}, &fakeListingRepo{}, &fakeCheckout{}).
		HandleCheckoutCompleted(context.Background(), sess); err != nil {
		t.Fatalf("unknown type should be acknowledged, got %v", err)
	}
}
