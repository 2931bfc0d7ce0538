package repository

import (
	"context"
	"time"

	"github.com/yotayard/yotayard/internal/domain"
)

// SearchListingsInput carries the browse/search filters. Zero values
// mean "no filter". Only active listings are ever returned.
type SearchListingsInput struct {
	Model        string
	YearMin      int
	YearMax      int
	PriceMin     int64 // cents
	PriceMax     int64
	MileageMax   int
	BodyType     domain.BodyType
	Condition    domain.Condition
	Drivetrain   domain.Drivetrain
	Transmission domain.Transmission
	Fuel         domain.FuelType

	LocationCity    string
	LocationState   string
	LocationCountry string

	// Keyset cursor over the full sort key (featured DESC, created_at
	// DESC, id DESC). All three are used only when CursorTime is
	// non-nil.
	CursorTime     *time.Time // nil = first page
	CursorID       string
	CursorFeatured bool
	Limit          int
}

// Usecases depend on interfaces, not concrete implementations, so the
// store can be swapped and tests can inject fakes.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Search(ctx context.Context, input SearchListingsInput) ([]*domain.Listing, error)
	Activate(ctx context.Context, id string) error

	AddContact(ctx context.Context, contact *domain.ListingContact) error
	GetContact(ctx context.Context, listingID string) (*domain.ListingContact, error)
	AddPhotos(ctx context.Context, listingID string, photos []*domain.ListingPhoto) error
	ListPhotos(ctx context.Context, listingID string) ([]*domain.ListingPhoto, error)

	// Sweeper: archive drafts created before cutoff that no longer have
	// an unconsumed verification token.
	ArchiveStaleDrafts(ctx context.Context, cutoff time.Time, limit int) (int, error)
}
