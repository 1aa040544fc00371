package config

import (
	"log"
	"os"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedDefaultAdmin creates the initial ADMIN account when the users table is
// empty. Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD with dev
// defaults; override both in production.
func SeedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := getEnv("ADMIN_USERNAME", "admin")
	plain := getEnv("ADMIN_PASSWORD", "changeme123")
	if os.Getenv("ADMIN_PASSWORD") == "" {
		log.Println("⚠️ ADMIN_PASSWORD not set, seeding admin with default password")
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: username,
		Email:    getEnv("ADMIN_EMAIL", "admin@lendflow.local"),
		Password: hashed,
		FullName: "System Administrator",
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded default admin user: %s", username)
	return nil
}
