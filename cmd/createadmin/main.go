package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/tourkita/tourkita-backend/internal/config"
	"github.com/tourkita/tourkita-backend/internal/database"
	"github.com/tourkita/tourkita-backend/pkg/utils"
)

// createadmin inserts a dashboard admin account. There is no signup
// endpoint; this is the only way accounts are created.
//
//	go run ./cmd/createadmin -username ana -email ana@tourkita.app -password secret
func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("username, email and password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	_, err = database.PostgresDB.Exec(`
		INSERT INTO admins (username, email, password_hash)
		VALUES ($1, $2, $3)
	`, *username, *email, hash)
	if err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Printf("✅ Admin %q created", *username)
}
