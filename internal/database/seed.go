package database

import (
	"log"

	"textile-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser creates the first-boot admin account when the user table is
// empty. The password should be changed right after the first login.
func SeedAdminUser() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Could not hash seed password: %v", err)
	}

	user := models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&user).Error; err != nil {
		log.Fatalf("Could not create seed admin user: %v", err)
	}
	log.Println("Seeded default admin user")
}
