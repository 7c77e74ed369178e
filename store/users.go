package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"be04/auth"
	"be04/models"

	"gorm.io/gorm"
)

// Users is the gorm-backed AccountDirectory.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) EmailExists(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt > 0, err
}

func (s *Users) Create(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	u := models.User{Email: email, Name: name, Password: passwordHash}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if IsUniqueViolation(err) { // race after the optimistic pre-check
			return nil, auth.ErrEmailExists
		}
		return nil, err
	}
	return &u, nil
}

// SetRefreshToken overwrites the stored refresh token unconditionally;
// nil clears it.
func (s *Users) SetRefreshToken(ctx context.Context, id uint, token *string) error {
	tx := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("refresh_token", token)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return auth.ErrAccountMissing
	}
	return nil
}

// SwapRefreshToken is the single-row compare-and-swap behind rotation:
// the WHERE clause pins the currently stored value, so of two
// concurrent rotations of the same token only one update matches a row.
func (s *Users) SwapRefreshToken(ctx context.Context, id uint, current string, next *string) (bool, error) {
	tx := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", id, current).
		Update("refresh_token", next)
	if tx.Error != nil {
		return false, fmt.Errorf("swap refresh token: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure
// from the database.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
