package main

import (
	"log"
	"os"

	"cassie-be/internal/model"
	"cassie-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Tables
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	log.Println("✅ Migration completed")
}
