package main

import (
	"log"

	"be04/auth"
	"be04/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	if cfg.AutoMigrate {
		// Roles first so the users FK can be applied safely.
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Menu{}); err != nil {
			log.Printf("migration warning (menus): %v", err)
		}
		if err := db.AutoMigrate(&models.Permission{}); err != nil {
			log.Printf("migration warning (permissions): %v", err)
		}
		if err := db.AutoMigrate(&models.RolePermission{}); err != nil {
			log.Printf("migration warning (role_permissions): %v", err)
		}
	}
	seedDB()
}

func seedDB() {
	// Ensure master roles exist
	roles := []models.Role{{Name: "superadmin", IsSuperadmin: true}, {Name: "user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}

	// Seed the superadmin account if missing
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "superadmin").First(&role).Error; err != nil {
			log.Printf("failed to find superadmin role: %v", err)
		}
		hashed, err := auth.NewBcryptHasher(0).Hash("admin123")
		if err != nil {
			log.Printf("failed to hash seed password: %v", err)
			return
		}
		rid := role.ID
		admin := models.User{
			Name:     "Administrator",
			Email:    "admin@example.com",
			Password: hashed,
			RoleID:   &rid,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("failed to seed admin user: %v", err)
			return
		}
		log.Println("Seeded admin user: email=admin@example.com, password=admin123")
	}
}
