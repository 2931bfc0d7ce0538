package domain

import (
	"errors"
	"time"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentAlreadyPaid = errors.New("payment already marked paid")
)

type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "initiated"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment records the flat seller listing fee.
type Payment struct {
	ID               string
	ListingID        string
	PayerID          string
	StripeCheckoutID string
	AmountCents      int64
	Status           PaymentStatus
	CreatedAt        time.Time
}

// Order records the buyer contact-access fee. A paid order unlocks the
// listing's contact details for that buyer.
type Order struct {
	ID                    string
	ListingID             string
	BuyerID               string
	SellerID              string
	StripePaymentIntentID string
	AmountCents           int64
	Status                PaymentStatus
	CreatedAt             time.Time
}
