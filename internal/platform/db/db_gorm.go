package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "mandi_backend/internal/feature/auth/domain/entity"
	listingadapters "mandi_backend/internal/feature/listings/adapters"
	negotiationadapters "mandi_backend/internal/feature/negotiation/adapters"
	orderadapters "mandi_backend/internal/feature/orders/adapters"
)

func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	instance := os.Getenv("INSTANCE_CONNECTION_NAME")

	var dsn string
	if instance != "" {
		dsn = fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			instance, user, pass, name)
	} else {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, pass, name)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Listing, Order, Negotiation など）
		if err := db.AutoMigrate(
			&authentity.User{},
			&listingadapters.ListingModel{},
			&orderadapters.OrderModel{},
			&negotiationadapters.ThreadModel{},
			&negotiationadapters.OfferModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}

	}

	return db
}
