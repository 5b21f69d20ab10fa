package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"legallens/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// TokenService issues and verifies the two credential kinds: short-lived
// stateless access tokens, verified purely cryptographically, and long-lived
// refresh tokens tracked in the database so they can be revoked. Refresh
// tokens are signed strings too but their validity is decided solely by the
// stored row; they are stored hashed so a leaked database does not yield
// usable credentials.
type TokenService struct {
	db         *gorm.DB
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(db *gorm.DB, secret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{db: db, secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue returns a new access/refresh token pair for the user and persists the
// refresh token's hash with its expiry.
func (s *TokenService) Issue(userID uint) (access, refresh string, err error) {
	access, err = s.sign(userID, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.sign(userID, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	rt := models.RefreshToken{
		UserID:    userID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.db.Create(&rt).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// VerifyAccess checks signature and expiry and returns the subject user id.
// It never touches storage, so a stolen-but-expired token cannot be revived.
func (s *TokenService) VerifyAccess(token string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !parsed.Valid {
		return 0, ErrTokenInvalid
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrTokenInvalid
	}
	return uint(userID), nil
}

// VerifyRefresh resolves a refresh token to its owning user id. An expired
// row is revoked before the failure is reported, so a later attempt with the
// same token fails as invalid rather than expired.
func (s *TokenService) VerifyRefresh(token string) (uint, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token_hash = ?", hashToken(token)).First(&rt).Error; err != nil {
		return 0, ErrRefreshTokenInvalid
	}
	if rt.Revoked {
		return 0, ErrRefreshTokenInvalid
	}
	if time.Now().After(rt.ExpiresAt) {
		// lazy revocation on expiry detection
		if err := s.db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).
			Update("revoked", true).Error; err != nil {
			return 0, err
		}
		return 0, ErrRefreshTokenExpired
	}
	return rt.UserID, nil
}

// Rotate exchanges a valid refresh token for a fresh pair, revoking the
// presented token. A replay of the old token after rotation fails as invalid.
func (s *TokenService) Rotate(token string) (access, refresh string, err error) {
	userID, err := s.VerifyRefresh(token)
	if err != nil {
		return "", "", err
	}
	if err := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(token)).
		Update("revoked", true).Error; err != nil {
		return "", "", err
	}
	return s.Issue(userID)
}

// Revoke marks the refresh token revoked. Revoking an already revoked token
// succeeds; an unknown token is reported as invalid.
func (s *TokenService) Revoke(token string) error {
	res := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(token)).
		Update("revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRefreshTokenInvalid
	}
	return nil
}

func (s *TokenService) sign(userID uint, ttl time.Duration) (string, error) {
	// The random jti keeps two tokens minted within the same second distinct,
	// which the unique index on refresh token hashes relies on.
	jti := make([]byte, 16)
	if _, err := rand.Read(jti); err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        hex.EncodeToString(jti),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
