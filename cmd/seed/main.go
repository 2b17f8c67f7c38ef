package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"voyago/internal/auth"
	"voyago/internal/listings"
	"voyago/internal/orders"
	"voyago/internal/shared/config"
	"voyago/internal/shared/database"
	"voyago/internal/shared/txn"
	"voyago/internal/users"
	"voyago/internal/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("🌱 Starting Voyago Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"cancellations",
		"order_lines",
		"orders",
		"products",
		"wallet_transactions",
		"wallets",
		"booking_records",
		"listing_dates",
		"listings",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()
	pg := s.db.GetPostgreSQL()
	txr := txn.NewTransactor(pg)

	accounts := map[string]users.Role{
		"admin":    users.RoleAdmin,
		"guide":    users.RoleGuide,
		"tourist1": users.RoleTourist,
		"tourist2": users.RoleTourist,
	}
	ids := make(map[string]uuid.UUID, len(accounts))
	for key := range accounts {
		ids[key] = uuid.New()
	}

	if err := s.SeedListings(ctx, listings.NewService(listings.NewRepository(pg), s.cfg.Booking.DefaultCurrency), ids["guide"]); err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}

	if err := s.SeedProducts(ctx, orders.NewService(orders.NewRepository(pg), nil, txr, s.cfg.Booking.DefaultCurrency), ids["admin"]); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	walletService := wallet.NewService(wallet.NewRepository(pg), txr, s.cfg.Booking.DefaultCurrency)
	for _, key := range []string{"tourist1", "tourist2"} {
		if _, err := walletService.TopUp(ctx, ids[key], decimal.NewFromInt(500), "seed"); err != nil {
			return fmt.Errorf("failed to fund wallet for %s: %w", key, err)
		}
		fmt.Printf("    ✅ Funded wallet for %s with 500.00\n", key)
	}

	// There is no login endpoint; print tokens for manual testing
	fmt.Println("\n  🔑 Access tokens (24h):")
	for key, role := range accounts {
		token, err := auth.IssueAccessToken(s.cfg.JWT.Secret, ids[key].String(), string(role), 24*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to issue token for %s: %w", key, err)
		}
		fmt.Printf("    %-9s %-8s %s\n    Bearer %s\n", key, role, ids[key], token)
	}

	if rdb := s.db.GetRedis(); rdb != nil {
		if err := rdb.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedListings creates itineraries and activities with dates over the next weeks
func (s *Seeder) SeedListings(ctx context.Context, svc listings.Service, guideID uuid.UUID) error {
	fmt.Println("  🗺️  Seeding listings...")

	today := time.Now().In(s.cfg.BookingLocation())
	dates := func(offsets ...int) []string {
		out := make([]string, 0, len(offsets))
		for _, o := range offsets {
			out = append(out, today.AddDate(0, 0, o).Format(listings.DateLayout))
		}
		return out
	}

	listingData := []listings.CreateListingRequest{
		{Kind: listings.KindItinerary, Name: "Cairo and Giza in three days", Price: "350", AvailableDates: dates(1, 3, 7, 14)},
		{Kind: listings.KindItinerary, Name: "Luxor to Aswan by river", Price: "820.50", AvailableDates: dates(5, 12, 19)},
		{Kind: listings.KindActivity, Name: "Felucca sunset ride", Price: "45", AvailableDates: dates(0, 1, 2, 3, 4)},
		{Kind: listings.KindActivity, Name: "Desert stargazing", Price: "60", AvailableDates: dates(2, 6, 9)},
	}

	for _, req := range listingData {
		l, err := svc.CreateListing(ctx, guideID, req)
		if err != nil {
			return fmt.Errorf("failed to create listing %q: %w", req.Name, err)
		}
		fmt.Printf("    ✅ Created %s: %s (%s)\n", l.Kind, l.Name, l.ID)
	}
	return nil
}

// SeedProducts fills the product catalogue
func (s *Seeder) SeedProducts(ctx context.Context, svc orders.Service, adminID uuid.UUID) error {
	fmt.Println("  🛍️  Seeding products...")

	productData := []orders.CreateProductRequest{
		{Name: "Cotton scarf", Price: "12.50"},
		{Name: "Papyrus print", Price: "30"},
		{Name: "Pyramid mug", Price: "8"},
	}

	for _, req := range productData {
		p, err := svc.CreateProduct(ctx, adminID, req)
		if err != nil {
			return fmt.Errorf("failed to create product %q: %w", req.Name, err)
		}
		fmt.Printf("    ✅ Created product: %s (%s)\n", p.Name, p.ID)
	}
	return nil
}
