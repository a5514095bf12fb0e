package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ecosoft-dev/ecosoft-api/config"
	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	"github.com/ecosoft-dev/ecosoft-api/pkg/helpers"
)

// Documented seed accounts for local development and the test suite.
// These are fixtures, not production practice.
var seedAccounts = []struct {
	name     string
	email    string
	password string
	role     string
}{
	{"Admin", "admin@ecosoft.com", "Admin@123456!", entity.RoleAdmin},
	{"Usuario", "usuario@ecosoft.com", "Usuario@123456!", entity.RoleUser},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, acc := range seedAccounts {
		hash, err := helpers.HashPassword(acc.password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		var id string
		err = db.QueryRow(`
			INSERT INTO users (name, email, password_hash, role, status)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO UPDATE
				SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
			RETURNING id
		`, acc.name, acc.email, hash, acc.role, entity.StatusActive).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", acc.email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s role=%s\n", id, acc.email, acc.role)
	}
}
