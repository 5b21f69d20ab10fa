package main

import (
	"fmt"
	"strings"
	"time"

	"legallens/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns user credentials: registration, password verification and
// the last-login timestamp. Token issuance lives in TokenService.
type AuthService struct {
	db                *gorm.DB
	passwordMinLength int
}

func NewAuthService(db *gorm.DB, passwordMinLength int) *AuthService {
	return &AuthService{db: db, passwordMinLength: passwordMinLength}
}

// Register creates a user with a bcrypt-hashed password. The email is
// normalized to lowercase before the uniqueness check and the insert.
func (s *AuthService) Register(email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email required")
	}
	if len(password) < s.passwordMinLength {
		return nil, ErrWeakPassword
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, HashedPassword: hashed}
	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies email+password. Unknown email and wrong password
// return the same error so neither case leaks which one failed.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// TouchLastLogin records a successful login on the user row.
func (s *AuthService) TouchLastLogin(userID uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", now).Error
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
