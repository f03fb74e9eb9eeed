package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/database/models"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// UserRepository defines the user lookups the auth service needs
type UserRepository interface {
	GetByEmail(tenantID uuid.UUID, email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
}

// RefreshTokenData stores information about an issued refresh token
type RefreshTokenData struct {
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthService provides authentication functionality
type AuthService struct {
	secret        []byte
	ttl           time.Duration
	refreshTokens map[string]*RefreshTokenData
	tokenMutex    sync.RWMutex
	userRepo      UserRepository
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email" example:"jane.doe@example.com"`
	Role     string    `json:"role" example:"agent"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(secret string, ttlMinutes int, userRepo UserRepository) (*AuthService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	if ttlMinutes < 1 {
		return nil, fmt.Errorf("jwt ttl must be at least one minute")
	}

	return &AuthService{
		secret:        []byte(secret),
		ttl:           time.Duration(ttlMinutes) * time.Minute,
		refreshTokens: make(map[string]*RefreshTokenData),
		userRepo:      userRepo,
	}, nil
}

// Login verifies the user's credentials within a tenant and issues a token
// pair. Inactive users and unknown emails both come back as an
// authentication error so callers cannot probe which emails exist.
func (s *AuthService) Login(tenantID uuid.UUID, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(tenantID, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.AuthenticationError{Message: "invalid credentials"}
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, &apperrors.AuthenticationError{Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &apperrors.AuthenticationError{Message: "invalid credentials"}
	}

	return s.issueTokenPair(user)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
// The old refresh token is invalidated in the exchange.
func (s *AuthService) RefreshToken(refreshToken string) (*TokenPair, error) {
	s.tokenMutex.RLock()
	tokenData, exists := s.refreshTokens[refreshToken]
	s.tokenMutex.RUnlock()

	if !exists {
		return nil, &apperrors.AuthenticationError{Message: "invalid refresh token"}
	}

	if time.Now().After(tokenData.ExpiresAt) {
		s.tokenMutex.Lock()
		delete(s.refreshTokens, refreshToken)
		s.tokenMutex.Unlock()
		return nil, &apperrors.AuthenticationError{Message: "refresh token has expired"}
	}

	user, err := s.userRepo.GetByID(tokenData.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.AuthenticationError{Message: "user no longer exists"}
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, &apperrors.AuthenticationError{Message: "user is deactivated"}
	}

	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()

	return s.issueTokenPair(user)
}

// Logout invalidates a refresh token. The access token stays valid until it
// expires; clients are expected to drop it.
func (s *AuthService) Logout(refreshToken string) {
	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()
}

// GenerateJWT creates a signed access token for the user
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "agency-crm-backend",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateJWT validates and parses an access token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) issueTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	refreshToken, err := generateRandomString(64)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.tokenMutex.Lock()
	s.refreshTokens[refreshToken] = &RefreshTokenData{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		Email:     user.Email,
		Role:      string(user.Role),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
		CreatedAt: time.Now(),
	}
	s.tokenMutex.Unlock()

	return &TokenPair{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.ttl.Seconds()),
		RefreshToken: refreshToken,
	}, nil
}

func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
