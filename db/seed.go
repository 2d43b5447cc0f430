package db

import (
	"errors"

	"fanloop-backend/models"
	"fanloop-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemoData inserts demo accounts for local development. Idempotent:
// existing emails are left untouched.
func SeedDemoData() {
	seedUser("admin@fanloop.dev", "Admin1234", "admin", models.AdminRole, 0)
	seedUser("creator@fanloop.dev", "Creator1234", "demo-creator", models.CreatorRole, 500)
	seedUser("user@fanloop.dev", "User1234", "demo-user", models.UserRole, 0)
}

func seedUser(email, password, name string, role models.Role, price int) {
	var existing models.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(err, "Error checking seed user "+email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError(err, "Error hashing seed password")
		return
	}

	user := models.User{
		Email:             email,
		Password:          string(hash),
		UserName:          name,
		Role:              role,
		SubscriptionPrice: price,
		Enable:            true,
	}
	if err := DB.Create(&user).Error; err != nil {
		utils.LogError(err, "Error creating seed user "+email)
		return
	}
	utils.LogInfo("Seeded user " + email)
}
