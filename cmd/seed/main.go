package main

import (
	"context"
	"flag"
	"log"
	"os"

	"cassie-be/internal/entity"
	"cassie-be/internal/model"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds or replaces the context record of one site.
//
//	go run ./cmd/seed -site site-1 -full "You are..." [-custom "..." -use-custom]
func main() {
	siteId := flag.String("site", "", "site id")
	full := flag.String("full", "", "generated persona text")
	custom := flag.String("custom", "", "owner-edited persona text")
	useCustom := flag.Bool("use-custom", false, "prefer the custom text")
	flag.Parse()

	if *siteId == "" {
		log.Fatal("Error: -site is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(&model.GeneratedContext{}); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	err = uow.GeneratedContextRepository().Save(ctx, &entity.GeneratedContext{
		SiteId:        *siteId,
		UseCustom:     *useCustom,
		FullContext:   *full,
		CustomContext: *custom,
	})
	if err != nil {
		log.Fatal("Error: Failed to save context:", err)
	}

	log.Printf("✅ Context saved for site %s", *siteId)
}
