// seed inserts a test seller and a page of listings into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/yotayard/yotayard/internal/infrastructure/postgres"
)

const seedEmail = "seed@test.local"

type listingSpec struct {
	title      string
	model      string
	year       int
	mileage    int
	priceCents int64
	condition  string
	bodyType   string
	drivetrain string
	fuel       string
	city       string
	state      string
	status     string
}

var listings = []listingSpec{
	// Active inventory — visible in search right away
	{"2019 Tacoma TRD Off-Road", "Tacoma", 2019, 42000, 3450000, "Good", "Truck", "4WD", "Gas", "Boise", "ID", "active"},
	{"2021 4Runner SR5 Premium", "4Runner", 2021, 28000, 4280000, "Excellent", "SUV", "4WD", "Gas", "Bend", "OR", "active"},
	{"2017 Camry SE, one owner", "Camry", 2017, 88000, 1590000, "Good", "Sedan", "FWD", "Gas", "Spokane", "WA", "active"},
	{"2020 RAV4 Hybrid XLE", "RAV4", 2020, 35000, 2890000, "Excellent", "SUV", "AWD", "Hybrid", "Missoula", "MT", "active"},
	{"2015 Tundra SR5 CrewMax", "Tundra", 2015, 112000, 2750000, "Fair", "Truck", "4WD", "Gas", "Twin Falls", "ID", "active"},
	{"2022 GX 460 Luxury", "GX 460", 2022, 18000, 5990000, "Excellent", "SUV", "4WD", "Gas", "Salt Lake City", "UT", "active"},
	{"2018 Highlander XLE", "Highlander", 2018, 64000, 2650000, "Good", "SUV", "AWD", "Gas", "Reno", "NV", "active"},
	{"2016 Prius Two", "Prius", 2016, 95000, 1290000, "Good", "Sedan", "FWD", "Hybrid", "Eugene", "OR", "active"},

	// Drafts — never verified, exercise the sweeper path
	{"1994 Land Cruiser FZJ80", "Land Cruiser", 1994, 210000, 1850000, "Project", "SUV", "4WD", "Gas", "Ogden", "UT", "draft"},
	{"2013 FJ Cruiser, lifted", "FJ Cruiser", 2013, 98000, 2990000, "Good", "SUV", "4WD", "Gas", "Coeur d'Alene", "ID", "draft"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	// Upsert test seller
	var sellerID string
	err = pool.QueryRow(ctx, `
		INSERT INTO sellers (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail,
	).Scan(&sellerID)
	if err != nil {
		pool.Close()
		log.Fatalf("upsert seller: %v", err)
	}

	// Insert listings, skip any that already exist (idempotent re-runs)
	var inserted, skipped int
	for _, spec := range listings {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO listings (
				seller_id, title, description, price_cents,
				make, model, year, mileage, condition, body_type, drivetrain,
				transmission, fuel, cab_size, engine, vin,
				location_city, location_state, location_country, postal_code,
				status
			) VALUES ($1, $2, 'Seed listing for local development.', $3,
			          'Toyota', $4, $5, $6, $7, $8, $9,
			          'Auto', $10, '', '', '',
			          $11, $12, 'US', '00000', $13)
			ON CONFLICT (seller_id, title) DO NOTHING
			RETURNING id`,
			sellerID, spec.title, spec.priceCents,
			spec.model, spec.year, spec.mileage, spec.condition, spec.bodyType, spec.drivetrain,
			spec.fuel, spec.city, spec.state, spec.status,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			skipped++
			continue
		}
		if err != nil {
			pool.Close()
			log.Fatalf("insert listing %q: %v", spec.title, err)
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO listing_contacts (listing_id, email, phone)
			VALUES ($1, $2, '+1-555-0100')`,
			id, seedEmail)
		if err != nil {
			pool.Close()
			log.Fatalf("insert contact for %q: %v", spec.title, err)
		}

		for i := 0; i < 3; i++ {
			_, err = pool.Exec(ctx, `
				INSERT INTO listing_photos (listing_id, path, width, height, sort_order)
				VALUES ($1, $2, 1200, 800, $3)`,
				id, fmt.Sprintf("seed/%s-%d.jpg", spec.model, i), i)
			if err != nil {
				pool.Close()
				log.Fatalf("insert photo for %q: %v", spec.title, err)
			}
		}
		inserted++
	}

	pool.Close()

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Seller:           %s\n", seedEmail)
	fmt.Printf("  Seller ID:        %s\n", sellerID)
	fmt.Printf("  Listings created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — request a sign-in link (it prints to the server log in ENV=local):")
	fmt.Println(`    curl -X POST localhost:8080/auth/magic-link -d '{"email":"seed@test.local"}' -H 'Content-Type: application/json'`)
	fmt.Println()
	fmt.Println("  Step 2 — browse:")
	fmt.Println("    curl 'localhost:8080/listings?model=Tacoma'")
}
