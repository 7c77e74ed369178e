package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"be04/auth"
	"be04/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
func setupTestDB(t *testing.T) *gorm.DB {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Fatal("DB_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@test.local", prefix, time.Now().UnixNano())
}

func TestUsersCreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	users := NewUsers(db)
	ctx := context.Background()

	email := uniqueEmail("create")
	created, err := users.Create(ctx, email, "Test User", "hashed-password")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected non-zero id")
	}

	byEmail, err := users.FindByEmail(ctx, email)
	if err != nil || byEmail == nil {
		t.Fatalf("find by email: user=%v err=%v", byEmail, err)
	}
	byID, err := users.FindByID(ctx, created.ID)
	if err != nil || byID == nil {
		t.Fatalf("find by id: user=%v err=%v", byID, err)
	}
	if byID.RefreshToken != nil {
		t.Fatal("fresh account should have no refresh token")
	}

	exists, err := users.EmailExists(ctx, email)
	if err != nil || !exists {
		t.Fatalf("email exists: %v %v", exists, err)
	}

	missing, err := users.FindByEmail(ctx, uniqueEmail("missing"))
	if err != nil || missing != nil {
		t.Fatalf("expected nil for absent email, got %v err=%v", missing, err)
	}
}

func TestUsersCreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	users := NewUsers(db)
	ctx := context.Background()

	email := uniqueEmail("dup")
	if _, err := users.Create(ctx, email, "First", "h1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := users.Create(ctx, email, "Second", "h2"); err != auth.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUsersSwapRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	users := NewUsers(db)
	ctx := context.Background()

	created, err := users.Create(ctx, uniqueEmail("swap"), "Swap User", "h")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first := "token-one"
	if err := users.SetRefreshToken(ctx, created.ID, &first); err != nil {
		t.Fatalf("set: %v", err)
	}

	second := "token-two"
	swapped, err := users.SwapRefreshToken(ctx, created.ID, first, &second)
	if err != nil || !swapped {
		t.Fatalf("expected swap to win: swapped=%v err=%v", swapped, err)
	}

	// the retired token no longer matches
	third := "token-three"
	swapped, err = users.SwapRefreshToken(ctx, created.ID, first, &third)
	if err != nil || swapped {
		t.Fatalf("expected swap with stale token to lose: swapped=%v err=%v", swapped, err)
	}

	// clear only when current matches
	swapped, err = users.SwapRefreshToken(ctx, created.ID, second, nil)
	if err != nil || !swapped {
		t.Fatalf("expected clear to win: swapped=%v err=%v", swapped, err)
	}
	got, err := users.FindByID(ctx, created.ID)
	if err != nil || got.RefreshToken != nil {
		t.Fatalf("expected cleared token, got %v err=%v", got.RefreshToken, err)
	}

	// swapping against a NULL column matches nothing
	swapped, err = users.SwapRefreshToken(ctx, created.ID, second, &third)
	if err != nil || swapped {
		t.Fatalf("expected swap on cleared session to lose: swapped=%v err=%v", swapped, err)
	}
}

func TestSetRefreshTokenMissingAccount(t *testing.T) {
	db := setupTestDB(t)
	users := NewUsers(db)

	token := "t"
	if err := users.SetRefreshToken(context.Background(), 0, &token); err != auth.ErrAccountMissing {
		t.Fatalf("expected ErrAccountMissing, got %v", err)
	}
}
