package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/repository"
	"github.com/yotayard/yotayard/internal/transport/http/middleware"
	"github.com/yotayard/yotayard/internal/usecase"
)

type listingUsecaser interface {
	CreateListing(ctx context.Context, input usecase.CreateListingInput) (*domain.Listing, error)
	GetPublic(ctx context.Context, id string) (*usecase.ListingDetail, error)
	Search(ctx context.Context, input repository.SearchListingsInput) ([]*domain.Listing, bool, error)
	RevealContact(ctx context.Context, listingID, buyerID string) (*domain.ListingContact, error)
}

type ListingHandler struct {
	uc     listingUsecaser
	logger *slog.Logger
}

func NewListingHandler(uc listingUsecaser, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{uc: uc, logger: logger.With("component", "listing_handler")}
}

type photoRequest struct {
	Path   string `json:"path"   binding:"required"`
	Width  int    `json:"width"  binding:"required,min=1"`
	Height int    `json:"height" binding:"required,min=1"`
}

type createListingRequest struct {
	Title       string `json:"title"       binding:"required,max=256"`
	Description string `json:"description" binding:"required,max=10000"`
	PriceCents  int64  `json:"price_cents" binding:"required,min=1"`

	Model        string `json:"model"        binding:"required,max=64"`
	Year         int    `json:"year"         binding:"required,min=1950,max=2030"`
	Mileage      int    `json:"mileage"      binding:"min=0"`
	Condition    string `json:"condition"    binding:"required,oneof=Excellent Good Fair Project"`
	BodyType     string `json:"body_type"    binding:"required"`
	Drivetrain   string `json:"drivetrain"`
	Transmission string `json:"transmission"`
	Fuel         string `json:"fuel"`
	CabSize      string `json:"cab_size"`
	Engine       string `json:"engine"`
	VIN          string `json:"vin"          binding:"omitempty,len=17"`

	LocationCity    string `json:"location_city"    binding:"required"`
	LocationState   string `json:"location_state"   binding:"required"`
	LocationCountry string `json:"location_country" binding:"required,oneof=US CA MX"`
	PostalCode      string `json:"postal_code"      binding:"required"`

	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone"`

	Photos []photoRequest `json:"photos" binding:"required,min=3,max=10,dive"`
}

type listingResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`

	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Mileage      int    `json:"mileage"`
	Condition    string `json:"condition"`
	BodyType     string `json:"body_type"`
	Drivetrain   string `json:"drivetrain,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Fuel         string `json:"fuel,omitempty"`
	CabSize      string `json:"cab_size,omitempty"`
	Engine       string `json:"engine,omitempty"`

	LocationCity    string `json:"location_city"`
	LocationState   string `json:"location_state"`
	LocationCountry string `json:"location_country"`

	Featured  bool      `json:"featured"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type photoResponse struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SortOrder int    `json:"sort_order"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		PriceCents:  l.PriceCents,

		Make:         l.Make,
		Model:        l.Model,
		Year:         l.Year,
		Mileage:      l.Mileage,
		Condition:    string(l.Condition),
		BodyType:     string(l.BodyType),
		Drivetrain:   string(l.Drivetrain),
		Transmission: string(l.Transmission),
		Fuel:         string(l.Fuel),
		CabSize:      l.CabSize,
		Engine:       l.Engine,

		LocationCity:    l.LocationCity,
		LocationState:   l.LocationState,
		LocationCountry: l.LocationCountry,

		Featured:  l.Featured,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
	}
}

// POST /listings (authenticated)
// The submission leaves the listing in draft; activation happens via the
// emailed verification link or the paid seller fee.
func (h *ListingHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photos := make([]usecase.PhotoInput, 0, len(req.Photos))
	for _, p := range req.Photos {
		photos = append(photos, usecase.PhotoInput{Path: p.Path, Width: p.Width, Height: p.Height})
	}

	listing, err := h.uc.CreateListing(c.Request.Context(), usecase.CreateListingInput{
		SellerID:    c.GetString(middleware.SellerIDKey),
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,

		Model:        req.Model,
		Year:         req.Year,
		Mileage:      req.Mileage,
		Condition:    domain.Condition(req.Condition),
		BodyType:     domain.BodyType(req.BodyType),
		Drivetrain:   domain.Drivetrain(req.Drivetrain),
		Transmission: domain.Transmission(req.Transmission),
		Fuel:         domain.FuelType(req.Fuel),
		CabSize:      req.CabSize,
		Engine:       req.Engine,
		VIN:          req.VIN,

		LocationCity:    req.LocationCity,
		LocationState:   req.LocationState,
		LocationCountry: req.LocationCountry,
		PostalCode:      req.PostalCode,

		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Photos:       photos,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrTooFewPhotos) || errors.Is(err, usecase.ErrTooManyPhotos) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("create listing", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         listing.ID,
		"status":     listing.Status,
		"created_at": listing.CreatedAt,
	})
}

// GET /listings/:id
func (h *ListingHandler) GetByID(c *gin.Context) {
	detail, err := h.uc.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errListingNotFound})
			return
		}
		h.logger.Error("get listing", "listing_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	photos := make([]photoResponse, 0, len(detail.Photos))
	for _, p := range detail.Photos {
		photos = append(photos, photoResponse{Path: p.Path, Width: p.Width, Height: p.Height, SortOrder: p.SortOrder})
	}

	resp := struct {
		listingResponse
		Photos []photoResponse `json:"photos"`
	}{toListingResponse(detail.Listing), photos}
	c.JSON(http.StatusOK, resp)
}

type searchListingsQuery struct {
	Model        string `form:"model"`
	YearMin      int    `form:"year_min"      binding:"omitempty,min=1950"`
	YearMax      int    `form:"year_max"      binding:"omitempty,max=2030"`
	PriceMin     int64  `form:"price_min"     binding:"omitempty,min=0"`
	PriceMax     int64  `form:"price_max"     binding:"omitempty,min=0"`
	MileageMax   int    `form:"mileage_max"   binding:"omitempty,min=0"`
	BodyType     string `form:"body_type"`
	Condition    string `form:"condition"`
	Drivetrain   string `form:"drivetrain"`
	Transmission string `form:"transmission"`
	Fuel         string `form:"fuel"`

	City    string `form:"city"`
	State   string `form:"state"`
	Country string `form:"country" binding:"omitempty,oneof=US CA MX"`

	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// GET /listings
// Cursor format is "<RFC3339Nano created_at>,<id>,<0|1 featured>" from
// the previous page's last row.
func (h *ListingHandler) Search(c *gin.Context) {
	var q searchListingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := repository.SearchListingsInput{
		Model:        q.Model,
		YearMin:      q.YearMin,
		YearMax:      q.YearMax,
		PriceMin:     q.PriceMin,
		PriceMax:     q.PriceMax,
		MileageMax:   q.MileageMax,
		BodyType:     domain.BodyType(q.BodyType),
		Condition:    domain.Condition(q.Condition),
		Drivetrain:   domain.Drivetrain(q.Drivetrain),
		Transmission: domain.Transmission(q.Transmission),
		Fuel:         domain.FuelType(q.Fuel),

		LocationCity:    q.City,
		LocationState:   q.State,
		LocationCountry: q.Country,

		Limit: q.Limit,
	}
	if q.Cursor != "" {
		cursorTime, cursorID, cursorFeatured, ok := parseCursor(q.Cursor)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed cursor"})
			return
		}
		input.CursorTime = &cursorTime
		input.CursorID = cursorID
		input.CursorFeatured = cursorFeatured
	}

	listings, hasMore, err := h.uc.Search(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("search listings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, toListingResponse(l))
	}

	resp := gin.H{"listings": items}
	if hasMore {
		last := listings[len(listings)-1]
		resp["next_cursor"] = formatCursor(last.CreatedAt, last.ID, last.Featured)
	}
	c.JSON(http.StatusOK, resp)
}

// GET /listings/:id/contact (authenticated)
func (h *ListingHandler) GetContact(c *gin.Context) {
	contact, err := h.uc.RevealContact(c.Request.Context(), c.Param("id"), c.GetString(middleware.SellerIDKey))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContactNotPaid):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": errContactNotPaid})
		case errors.Is(err, domain.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errListingNotFound})
		default:
			h.logger.Error("reveal contact", "listing_id", c.Param("id"), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email": contact.Email,
		"phone": contact.Phone,
	})
}
