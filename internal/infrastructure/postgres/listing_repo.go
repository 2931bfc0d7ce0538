package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/repository"
)

const listingColumns = `id, seller_id, title, description, price_cents,
	make, model, year, mileage, condition, body_type, drivetrain,
	transmission, fuel, cab_size, engine, vin,
	location_city, location_state, location_country, postal_code,
	featured, status, created_at, updated_at`

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	query := `
		INSERT INTO listings (
			seller_id, title, description, price_cents,
			make, model, year, mileage, condition, body_type, drivetrain,
			transmission, fuel, cab_size, engine, vin,
			location_city, location_state, location_country, postal_code,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		          $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING ` + listingColumns

	row := r.pool.QueryRow(ctx, query,
		l.SellerID, l.Title, l.Description, l.PriceCents,
		l.Make, l.Model, l.Year, l.Mileage, l.Condition, l.BodyType, l.Drivetrain,
		l.Transmission, l.Fuel, l.CabSize, l.Engine, l.VIN,
		l.LocationCity, l.LocationState, l.LocationCountry, l.PostalCode,
		l.Status,
	)
	return scanListing(row)
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return scanListing(r.pool.QueryRow(ctx, query, id))
}

func (r *ListingRepository) Search(ctx context.Context, input repository.SearchListingsInput) ([]*domain.Listing, error) {
	args := []any{domain.ListingActive}
	where := []string{"status = $1"}

	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if input.Model != "" {
		add("model = $%d", input.Model)
	}
	if input.YearMin > 0 {
		add("year >= $%d", input.YearMin)
	}
	if input.YearMax > 0 {
		add("year <= $%d", input.YearMax)
	}
	if input.PriceMin > 0 {
		add("price_cents >= $%d", input.PriceMin)
	}
	if input.PriceMax > 0 {
		add("price_cents <= $%d", input.PriceMax)
	}
	if input.MileageMax > 0 {
		add("mileage <= $%d", input.MileageMax)
	}
	if input.BodyType != "" {
		add("body_type = $%d", input.BodyType)
	}
	if input.Condition != "" {
		add("condition = $%d", input.Condition)
	}
	if input.Drivetrain != "" {
		add("drivetrain = $%d", input.Drivetrain)
	}
	if input.Transmission != "" {
		add("transmission = $%d", input.Transmission)
	}
	if input.Fuel != "" {
		add("fuel = $%d", input.Fuel)
	}
	if input.LocationCity != "" {
		add("location_city ILIKE '%%' || $%d || '%%'", input.LocationCity)
	}
	if input.LocationState != "" {
		add("location_state = $%d", input.LocationState)
	}
	if input.LocationCountry != "" {
		add("location_country = $%d", input.LocationCountry)
	}
	if input.CursorTime != nil {
		// The keyset predicate must compare the same columns, in the
		// same order, as the ORDER BY below.
		args = append(args, input.CursorFeatured, *input.CursorTime, input.CursorID)
		where = append(where, fmt.Sprintf("(featured, created_at, id) < ($%d, $%d, $%d)",
			len(args)-2, len(args)-1, len(args)))
	}
	args = append(args, input.Limit)

	query := fmt.Sprintf(`
		SELECT `+listingColumns+`
		FROM listings
		WHERE %s
		ORDER BY featured DESC, created_at DESC, id DESC
		LIMIT $%d`,
		strings.Join(where, " AND "), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func (r *ListingRepository) Activate(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE listings SET status = 'active', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("activate listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) AddContact(ctx context.Context, c *domain.ListingContact) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO listing_contacts (listing_id, email, phone) VALUES ($1, $2, $3)`,
		c.ListingID, c.Email, c.Phone)
	if err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetContact(ctx context.Context, listingID string) (*domain.ListingContact, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, listing_id, email, phone, created_at
		FROM listing_contacts WHERE listing_id = $1`, listingID)

	var c domain.ListingContact
	err := row.Scan(&c.ID, &c.ListingID, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	return &c, nil
}

func (r *ListingRepository) AddPhotos(ctx context.Context, listingID string, photos []*domain.ListingPhoto) error {
	for _, p := range photos {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO listing_photos (listing_id, path, width, height, sort_order)
			VALUES ($1, $2, $3, $4, $5)`,
			listingID, p.Path, p.Width, p.Height, p.SortOrder)
		if err != nil {
			return fmt.Errorf("add photo: %w", err)
		}
	}
	return nil
}

func (r *ListingRepository) ListPhotos(ctx context.Context, listingID string) ([]*domain.ListingPhoto, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, listing_id, path, width, height, sort_order, created_at
		FROM listing_photos WHERE listing_id = $1 ORDER BY sort_order ASC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []*domain.ListingPhoto
	for rows.Next() {
		var p domain.ListingPhoto
		if err := rows.Scan(&p.ID, &p.ListingID, &p.Path, &p.Width, &p.Height, &p.SortOrder, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, &p)
	}
	return photos, nil
}

func (r *ListingRepository) ArchiveStaleDrafts(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE listings
		SET    status = 'archived', updated_at = NOW()
		WHERE id IN (
			SELECT l.id FROM listings l
			WHERE  l.status = 'draft'
			  AND  l.created_at < $1
			  AND NOT EXISTS (
				SELECT 1 FROM listing_verification_tokens t
				WHERE t.listing_id = l.id
				  AND t.used = false
				  AND t.expires_at > NOW()
			  )
			ORDER BY l.created_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)`, cutoff, limit)
	return int(tag.RowsAffected()), err
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ID, &l.SellerID, &l.Title, &l.Description, &l.PriceCents,
		&l.Make, &l.Model, &l.Year, &l.Mileage, &l.Condition, &l.BodyType, &l.Drivetrain,
		&l.Transmission, &l.Fuel, &l.CabSize, &l.Engine, &l.VIN,
		&l.LocationCity, &l.LocationState, &l.LocationCountry, &l.PostalCode,
		&l.Featured, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	return &l, nil
}
