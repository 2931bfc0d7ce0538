package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/repository"
)

// Function-field fakes: tests set only the methods they expect to be
// called; an unexpected call panics on the nil field.

type fakeListingRepo struct {
	create             func(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	getByID            func(ctx context.Context, id string) (*domain.Listing, error)
	search             func(ctx context.Context, input repository.SearchListingsInput) ([]*domain.Listing, error)
	activate           func(ctx context.Context, id string) error
	addContact         func(ctx context.Context, c *domain.ListingContact) error
	getContact         func(ctx context.Context, listingID string) (*domain.ListingContact, error)
	addPhotos          func(ctx context.Context, listingID string, photos []*domain.ListingPhoto) error
	listPhotos         func(ctx context.Context, listingID string) ([]*domain.ListingPhoto, error)
	archiveStaleDrafts func(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

func (r *fakeListingRepo) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	return r.create(ctx, l)
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	return r.getByID(ctx, id)
}

func (r *fakeListingRepo) Search(ctx context.Context, input repository.SearchListingsInput) ([]*domain.Listing, error) {
	return r.search(ctx, input)
}

func (r *fakeListingRepo) Activate(ctx context.Context, id string) error {
	return r.activate(ctx, id)
}

func (r *fakeListingRepo) AddContact(ctx context.Context, c *domain.ListingContact) error {
	return r.addContact(ctx, c)
}

func (r *fakeListingRepo) GetContact(ctx context.Context, listingID string) (*domain.ListingContact, error) {
	return r.getContact(ctx, listingID)
}

func (r *fakeListingRepo) AddPhotos(ctx context.Context, listingID string, photos []*domain.ListingPhoto) error {
	return r.addPhotos(ctx, listingID, photos)
}

func (r *fakeListingRepo) ListPhotos(ctx context.Context, listingID string) ([]*domain.ListingPhoto, error) {
	return r.listPhotos(ctx, listingID)
}

func (r *fakeListingRepo) ArchiveStaleDrafts(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	return r.archiveStaleDrafts(ctx, cutoff, limit)
}

type fakeVerificationRepo struct {
	createToken      func(ctx context.Context, listingID, token string, expiresAt time.Time) (*domain.VerificationToken, error)
	findUnused       func(ctx context.Context, token string) (*domain.VerificationToken, error)
	claimAndActivate func(ctx context.Context, token, listingID string) error
	purgeExpired     func(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

func (r *fakeVerificationRepo) CreateToken(ctx context.Context, listingID, token string, expiresAt time.Time) (*domain.VerificationToken, error) {
	return r.createToken(ctx, listingID, token, expiresAt)
}

func (r *fakeVerificationRepo) FindUnused(ctx context.Context, token string) (*domain.VerificationToken, error) {
	return r.findUnused(ctx, token)
}

func (r *fakeVerificationRepo) ClaimAndActivate(ctx context.Context, token, listingID string) error {
	return r.claimAndActivate(ctx, token, listingID)
}

func (r *fakeVerificationRepo) PurgeExpired(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	return r.purgeExpired(ctx, cutoff, limit)
}

type fakeSellerRepo struct {
	findOrCreate     func(ctx context.Context, email string) (*domain.Seller, error)
	findByID         func(ctx context.Context, id string) (*domain.Seller, error)
	createMagicToken func(ctx context.Context, sellerID, tokenHash string, expiresAt time.Time) error
	claimMagicToken  func(ctx context.Context, tokenHash string) (*domain.MagicToken, error)
}

func (r *fakeSellerRepo) FindOrCreate(ctx context.Context, email string) (*domain.Seller, error) {
	return r.findOrCreate(ctx, email)
}

func (r *fakeSellerRepo) FindByID(ctx context.Context, id string) (*domain.Seller, error) {
	return r.findByID(ctx, id)
}

func (r *fakeSellerRepo) CreateMagicToken(ctx context.Context, sellerID, tokenHash string, expiresAt time.Time) error {
	return r.createMagicToken(ctx, sellerID, tokenHash, expiresAt)
}

func (r *fakeSellerRepo) ClaimMagicToken(ctx context.Context, tokenHash string) (*domain.MagicToken, error) {
	return r.claimMagicToken(ctx, tokenHash)
}

type fakePaymentRepo struct {
	createPayment   func(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	markPaymentPaid func(ctx context.Context, listingID, payerID, checkoutID string) error
	createOrder     func(ctx context.Context, o *domain.Order) (*domain.Order, error)
	hasPaidOrder    func(ctx context.Context, listingID, buyerID string) (bool, error)
}

func (r *fakePaymentRepo) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	return r.createPayment(ctx, p)
}

func (r *fakePaymentRepo) MarkPaymentPaid(ctx context.Context, listingID, payerID, checkoutID string) error {
	return r.markPaymentPaid(ctx, listingID, payerID, checkoutID)
}

func (r *fakePaymentRepo) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	return r.createOrder(ctx, o)
}

func (r *fakePaymentRepo) HasPaidOrder(ctx context.Context, listingID, buyerID string) (bool, error) {
	return r.hasPaidOrder(ctx, listingID, buyerID)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

// memTokenStore is a concurrency-safe in-memory token store whose
// ClaimAndActivate is a real compare-and-swap with rollback-on-failure
// semantics, for the concurrent-redemption and retry properties. The
// activate hook stands in for the listing update inside the
// transaction; if unset it counts activations and succeeds.
type memTokenStore struct {
	mu          sync.Mutex
	token       *domain.VerificationToken
	activations int
	activate    func(listingID string) error
}

func (s *memTokenStore) CreateToken(_ context.Context, listingID, token string, expiresAt time.Time) (*domain.VerificationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = &domain.VerificationToken{
		ID:        "tok-1",
		ListingID: listingID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return s.token, nil
}

func (s *memTokenStore) FindUnused(_ context.Context, token string) (*domain.VerificationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil || s.token.Token != token || s.token.Used {
		return nil, domain.ErrTokenInvalid
	}
	cp := *s.token
	return &cp, nil
}

func (s *memTokenStore) ClaimAndActivate(_ context.Context, token, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil || s.token.Token != token || s.token.Used {
		return domain.ErrTokenInvalid
	}
	if s.activate != nil {
		if err := s.activate(listingID); err != nil {
			// Activation failed: the claim rolls back, used stays false.
			return err
		}
	}
	s.token.Used = true
	s.activations++
	return nil
}

func (s *memTokenStore) PurgeExpired(_ context.Context, _ time.Time, _ int) (int, error) {
	return 0, nil
}
