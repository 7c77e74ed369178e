package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"be04/auth"
	"be04/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: go run ./cmd/create_account <name> <email> <password>")
		os.Exit(2)
	}
	name := os.Args[1]
	email := os.Args[2]
	password := os.Args[3]

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	// ensure the default role exists
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err != nil {
		role = models.Role{Name: "user"}
		db.Create(&role)
	}

	hashed, err := auth.NewBcryptHasher(0).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	rid := role.ID
	user := models.User{Name: name, Email: email, Password: hashed, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create account: %v", err)
	}
	fmt.Printf("created account id=%d email=%s\n", user.ID, user.Email)
}
