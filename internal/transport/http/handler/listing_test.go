package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/repository"
	"github.com/yotayard/yotayard/internal/transport/http/handler"
	"github.com/yotayard/yotayard/internal/usecase"
)

type fakeListingUsecase struct {
	createListing func(ctx context.Context, input usecase.CreateListingInput) (*domain.Listing, error)
	getPublic     func(ctx context.Context, id string) (*usecase.ListingDetail, error)
	search        func(ctx context.Context, input repository.SearchListingsInput) ([]*domain.Listing, bool, error)
	revealContact func(ctx context.Context, listingID, buyerID string) (*domain.ListingContact, error)
}

func (f *fakeListingUsecase) CreateListing(ctx context.Context, input usecase.CreateListingInput) (*domain.Listing, error) {
	return f.createListing(ctx, input)
}

func (f *fakeListingUsecase) GetPublic(ctx context.Context, id string) (*usecase.ListingDetail, error) {
	return f.getPublic(ctx, id)
}

func (f *fakeListingUsecase) Search(ctx context.Context, input repository.SearchListingsInput) ([]*domain.Listing, bool, error) {
	return f.search(ctx, input)
}

func (f *fakeListingUsecase) RevealContact(ctx context.Context, listingID, buyerID string) (*domain.ListingContact, error) {
	return f.revealContact(ctx, listingID, buyerID)
}

func newListingEngine(uc *fakeListingUsecase) *gin.Engine {
	h := handler.NewListingHandler(uc, testLogger())
	r := gin.New()
	r.GET("/listings", h.Search)
	r.GET("/listings/:id", h.GetByID)
	r.GET("/listings/:id/contact", h.GetContact)
	r.POST("/listings", h.Create)
	return r
}

const validCreateBody = `{
	"title": "2019 Tacoma TRD Off-Road",
	"description": "One owner, dealer maintained.",
	"price_cents": 3450000,
	"model": "Tacoma",
	"year": 2019,
	"mileage": 42000,
	"condition": "Good",
	"body_type": "Truck",
	"location_city": "Boise",
	"location_state": "ID",
	"location_country": "US",
	"postal_code": "83702",
	"contact_email": "seller@example.com",
	"photos": [
		{"path": "a.jpg", "width": 1200, "height": 800},
		{"path": "b.jpg", "width": 1200, "height": 800},
		{"path": "c.jpg", "width": 1200, "height": 800}
	]
}`

func TestCreateListing_Returns201(t *testing.T) {
	var got usecase.CreateListingInput
	uc := &fakeListingUsecase{
		createListing: func(_ context.Context, input usecase.CreateListingInput) (*domain.Listing, error) {
			got = input
			return &domain.Listing{ID: "listing-1", Status: domain.ListingDraft, CreatedAt: time.Now()}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(validCreateBody))
	req.Header.Set("Content-Type", "application/json")
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if got.Model != "Tacoma" || got.Year != 2019 || len(got.Photos) != 3 {
		t.Errorf("input = %+v", got)
	}
	if !strings.Contains(w.Body.String(), `"status":"draft"`) {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestCreateListing_TwoPhotos_Returns400(t *testing.T) {
	uc := &fakeListingUsecase{}
	body := strings.Replace(validCreateBody, `,
		{"path": "c.jpg", "width": 1200, "height": 800}`, "", 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetListing_NotFound_Returns404(t *testing.T) {
	uc := &fakeListingUsecase{
		getPublic: func(_ context.Context, _ string) (*usecase.ListingDetail, error) {
			return nil, domain.ErrListingNotFound
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings/listing-1", nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetListing_Active_ReturnsPhotos(t *testing.T) {
	uc := &fakeListingUsecase{
		getPublic: func(_ context.Context, id string) (*usecase.ListingDetail, error) {
			return &usecase.ListingDetail{
				Listing: &domain.Listing{ID: id, Title: "2018 4Runner", Status: domain.ListingActive},
				Photos:  []*domain.ListingPhoto{{Path: "a.jpg", Width: 1200, Height: 800}},
			}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings/listing-1", nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"a.jpg"`) {
		t.Errorf("body %q missing photo", w.Body.String())
	}
}

func TestSearchListings_PassesFiltersAndCursor(t *testing.T) {
	var got repository.SearchListingsInput
	uc := &fakeListingUsecase{
		search: func(_ context.Context, input repository.SearchListingsInput) ([]*domain.Listing, bool, error) {
			got = input
			return []*domain.Listing{{ID: "listing-9", CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}}, true, nil
		},
	}
	w := httptest.NewRecorder()
	cursor := "2026-08-15T10:00:00Z,listing-5,1"
	req := httptest.NewRequest(http.MethodGet,
		"/listings?model=Tacoma&year_min=2015&price_max=4000000&body_type=Truck&cursor="+cursor, nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if got.Model != "Tacoma" || got.YearMin != 2015 || got.PriceMax != 4000000 || got.BodyType != domain.BodyTruck {
		t.Errorf("filters = %+v", got)
	}
	if got.CursorTime == nil || got.CursorID != "listing-5" || !got.CursorFeatured {
		t.Errorf("cursor = (%v, %q, %v)", got.CursorTime, got.CursorID, got.CursorFeatured)
	}
	if !strings.Contains(w.Body.String(), `"next_cursor":"2026-08-01T00:00:00Z,listing-9,0"`) {
		t.Errorf("body %q missing next cursor", w.Body.String())
	}
}

// The cursor must carry the page-end row's featured flag: the sort key
// is (featured, created_at, id), so a cursor missing featured would let
// a featured page-end row hide newer non-featured rows on the next
// page.
func TestSearchListings_CursorCarriesFeaturedFlag(t *testing.T) {
	uc := &fakeListingUsecase{
		search: func(_ context.Context, _ repository.SearchListingsInput) ([]*domain.Listing, bool, error) {
			return []*domain.Listing{
				{ID: "listing-1", Featured: true, CreatedAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
			}, true, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"next_cursor":"2026-08-20T00:00:00Z,listing-1,1"`) {
		t.Errorf("body %q missing featured cursor", w.Body.String())
	}
}

func TestSearchListings_FinalPage_OmitsNextCursor(t *testing.T) {
	uc := &fakeListingUsecase{
		search: func(_ context.Context, _ repository.SearchListingsInput) ([]*domain.Listing, bool, error) {
			return []*domain.Listing{{ID: "listing-9", CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}}, false, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), "next_cursor") {
		t.Errorf("final page must not carry a next_cursor, body %q", w.Body.String())
	}
}

func TestSearchListings_MalformedCursor_Returns400(t *testing.T) {
	uc := &fakeListingUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings?cursor=not-a-cursor", nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetContact_Unpaid_Returns402(t *testing.T) {
	uc := &fakeListingUsecase{
		revealContact: func(_ context.Context, _, _ string) (*domain.ListingContact, error) {
			return nil, domain.ErrContactNotPaid
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings/listing-1/contact", nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusPaymentRequired {
		t.Errorf("status = %d, want 402", w.Code)
	}
}

func TestGetContact_Paid_ReturnsDetails(t *testing.T) {
	uc := &fakeListingUsecase{
		revealContact: func(_ context.Context, _, _ string) (*domain.ListingContact, error) {
			return &domain.ListingContact{Email: "seller@example.com", Phone: "+1-555-0100"}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/listings/listing-1/contact", nil)
	newListingEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "seller@example.com") {
		t.Errorf("body = %q", w.Body.String())
	}
}
