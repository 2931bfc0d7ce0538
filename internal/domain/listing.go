package domain

import (
	"errors"
	"time"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrContactNotPaid  = errors.New("contact access requires a paid order")
)

type ListingStatus string

const (
	ListingDraft       ListingStatus = "draft"
	ListingActive      ListingStatus = "active"
	ListingPendingSale ListingStatus = "pending_sale"
	ListingSold        ListingStatus = "sold"
	ListingArchived    ListingStatus = "archived"
)

type Condition string

const (
	ConditionExcellent Condition = "Excellent"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
	ConditionProject   Condition = "Project"
)

type Listing struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	PriceCents  int64

	Make         string // always "Toyota"
	Model        string
	Year         int
	Mileage      int
	Condition    Condition
	BodyType     BodyType
	Drivetrain   Drivetrain
	Transmission Transmission
	Fuel         FuelType
	CabSize      string
	Engine       string
	VIN          string

	LocationCity    string
	LocationState   string
	LocationCountry string // US, CA or MX
	PostalCode      string

	Featured  bool
	Status    ListingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListingPhoto struct {
	ID        string
	ListingID string
	Path      string
	Width     int
	Height    int
	SortOrder int
	CreatedAt time.Time
}

type ListingContact struct {
	ID        string
	ListingID string
	Email     string
	Phone     string
	CreatedAt time.Time
}
