package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
	"github.com/orcahub/OrcaHub/internal/pkg/env"
)

// SeedAdminUser creates the bootstrap admin account on first start so a
// fresh installation has an actor that can own budgets. Skipped when the
// env vars are absent or the account already exists.
func SeedAdminUser() {
	email := env.GetEnv("ADMIN_EMAIL", "")
	password := env.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return
	}

	repo := repository.NewUserRepository(DB)

	if _, err := repo.GetByEmail(email); err == nil {
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Could not check for admin user: %v", err)
		return
	}

	admin, err := models.CreateUser(1, env.GetEnv("ADMIN_NAME", "Admin"), email, password)
	if err != nil {
		log.Printf("Could not create admin user: %v", err)
		return
	}
	admin.Role = models.ROLE_ADMIN

	if err := repo.Create(admin); err != nil {
		log.Printf("Could not persist admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user %s", email)
}
