package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/repository"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
	minPhotos          = 3
	maxPhotos          = 10
)

var (
	ErrTooFewPhotos  = errors.New("at least 3 photos are required")
	ErrTooManyPhotos = errors.New("at most 10 photos are allowed")
)

// verificationIssuer is the slice of VerificationUsecase the listing
// flow needs. Defined here so tests can inject a fake.
type verificationIssuer interface {
	Issue(ctx context.Context, listingID, contactEmail string) (*domain.VerificationToken, error)
}

type ListingUsecase struct {
	listings     repository.ListingRepository
	payments     repository.PaymentRepository
	verification verificationIssuer
}

func NewListingUsecase(
	listings repository.ListingRepository,
	payments repository.PaymentRepository,
	verification verificationIssuer,
) *ListingUsecase {
	return &ListingUsecase{
		listings:     listings,
		payments:     payments,
		verification: verification,
	}
}

type PhotoInput struct {
	Path   string
	Width  int
	Height int
}

type CreateListingInput struct {
	SellerID    string
	Title       string
	Description string
	PriceCents  int64

	Model        string
	Year         int
	Mileage      int
	Condition    domain.Condition
	BodyType     domain.BodyType
	Drivetrain   domain.Drivetrain
	Transmission domain.Transmission
	Fuel         domain.FuelType
	CabSize      string
	Engine       string
	VIN          string

	LocationCity    string
	LocationState   string
	LocationCountry string
	PostalCode      string

	ContactEmail string
	ContactPhone string
	Photos       []PhotoInput
}

// CreateListing is the wizard submission: insert the draft, record the
// contact and photo rows, then mint and email a verification token.
// The listing stays in draft until the emailed link is redeemed (or
// the seller fee is paid).
func (u *ListingUsecase) CreateListing(ctx context.Context, input CreateListingInput) (*domain.Listing, error) {
	if len(input.Photos) < minPhotos {
		return nil, ErrTooFewPhotos
	}
	if len(input.Photos) > maxPhotos {
		return nil, ErrTooManyPhotos
	}

	listing := &domain.Listing{
		SellerID:    input.SellerID,
		Title:       input.Title,
		Description: input.Description,
		PriceCents:  input.PriceCents,

		Make:         "Toyota",
		Model:        input.Model,
		Year:         input.Year,
		Mileage:      input.Mileage,
		Condition:    input.Condition,
		BodyType:     input.BodyType,
		Drivetrain:   input.Drivetrain,
		Transmission: input.Transmission,
		Fuel:         input.Fuel,
		CabSize:      input.CabSize,
		Engine:       input.Engine,
		VIN:          input.VIN,

		LocationCity:    input.LocationCity,
		LocationState:   input.LocationState,
		LocationCountry: input.LocationCountry,
		PostalCode:      input.PostalCode,

		Status: domain.ListingDraft,
	}

	created, err := u.listings.Create(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	metrics.ListingsCreatedTotal.Inc()

	if err := u.listings.AddContact(ctx, &domain.ListingContact{
		ListingID: created.ID,
		Email:     input.ContactEmail,
		Phone:     input.ContactPhone,
	}); err != nil {
		return nil, fmt.Errorf("add contact: %w", err)
	}

	photos := make([]*domain.ListingPhoto, 0, len(input.Photos))
	for i, p := range input.Photos {
		photos = append(photos, &domain.ListingPhoto{
			Path:      p.Path,
			Width:     p.Width,
			Height:    p.Height,
			SortOrder: i,
		})
	}
	if err := u.listings.AddPhotos(ctx, created.ID, photos); err != nil {
		return nil, fmt.Errorf("add photos: %w", err)
	}

	if _, err := u.verification.Issue(ctx, created.ID, input.ContactEmail); err != nil {
		return nil, fmt.Errorf("issue verification: %w", err)
	}

	return created, nil
}

// ListingDetail is a listing with its photos attached.
type ListingDetail struct {
	Listing *domain.Listing
	Photos  []*domain.ListingPhoto
}

// GetPublic returns an active listing with photos. Drafts and archived
// listings are indistinguishable from missing ones.
func (u *ListingUsecase) GetPublic(ctx context.Context, id string) (*ListingDetail, error) {
	listing, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if listing.Status != domain.ListingActive {
		return nil, domain.ErrListingNotFound
	}

	photos, err := u.listings.ListPhotos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	return &ListingDetail{Listing: listing, Photos: photos}, nil
}

// Search returns active listings matching the filters, newest first,
// featured listings ahead of the rest. hasMore reports whether another
// page exists past the returned listings; it is determined by fetching
// one row beyond the requested limit.
func (u *ListingUsecase) Search(ctx context.Context, input repository.SearchListingsInput) (listings []*domain.Listing, hasMore bool, err error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	input.Limit = limit + 1

	listings, err = u.listings.Search(ctx, input)
	if err != nil {
		return nil, false, fmt.Errorf("search listings: %w", err)
	}
	if len(listings) > limit {
		listings = listings[:limit]
		hasMore = true
	}
	return listings, hasMore, nil
}

// RevealContact returns the seller contact details, gated on the buyer
// holding a paid contact-access order for the listing.
func (u *ListingUsecase) RevealContact(ctx context.Context, listingID, buyerID string) (*domain.ListingContact, error) {
	paid, err := u.payments.HasPaidOrder(ctx, listingID, buyerID)
	if err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if !paid {
		return nil, domain.ErrContactNotPaid
	}

	contact, err := u.listings.GetContact(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}
