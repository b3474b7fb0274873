package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/MatiasBordenave/Practica-Backend/internal/auth"
	"github.com/MatiasBordenave/Practica-Backend/internal/config"
	"github.com/MatiasBordenave/Practica-Backend/internal/db"
	"github.com/MatiasBordenave/Practica-Backend/internal/model"
)

// Seeds the initial superadmin account. Without it nobody can use the
// administrative endpoints, since registration always produces plain
// users.
func main() {
	_ = godotenv.Load()

	username := getenv("SEED_ADMIN_USERNAME", "superadmin")
	email := getenv("SEED_ADMIN_EMAIL", "superadmin@localhost")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	ctx := context.Background()

	var existing model.User
	err = gormDB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	switch {
	case err == nil:
		existing.Email = email
		existing.PasswordHash = hashed
		existing.Role = model.RoleSuperadmin
		existing.Status = model.StatusActive
		if err := gormDB.WithContext(ctx).Save(&existing).Error; err != nil {
			log.Fatalf("update superadmin: %v", err)
		}
		log.Printf("superadmin %q updated", username)
	case err == gorm.ErrRecordNotFound:
		user := model.User{
			Username:     username,
			Email:        email,
			PasswordHash: hashed,
			Role:         model.RoleSuperadmin,
			Status:       model.StatusActive,
			LastLogin:    time.Now(),
		}
		if err := gormDB.WithContext(ctx).Create(&user).Error; err != nil {
			log.Fatalf("create superadmin: %v", err)
		}
		log.Printf("superadmin %q created (id=%d)", username, user.ID)
	default:
		log.Fatalf("lookup superadmin: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
