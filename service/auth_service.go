package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
	"voting-api/config"
	"voting-api/logger"
	"voting-api/model"
	"voting-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrPhoneTaken         = errors.New("an account with this phone number already exists")
)

// AuthService issues and validates session tokens. Access tokens are
// stateless HS256 JWTs; refresh tokens are opaque values stored hashed and
// rotated on every use so a stolen token is good for at most one refresh.
type AuthService struct {
	identityRepo repository.IIdentityRepository
	tokenRepo    repository.ITokenRepository
}

func NewAuthService(identityRepo repository.IIdentityRepository, tokenRepo repository.ITokenRepository) *AuthService {
	return &AuthService{
		identityRepo: identityRepo,
		tokenRepo:    tokenRepo,
	}
}

func getJwtKey() []byte {
	return []byte(config.AppConfig.JWT.SecretKey)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// RegisterIdentity creates a new account with a hashed password.
func (s *AuthService) RegisterIdentity(phone, password string) (*model.Identity, error) {
	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	identity := &model.Identity{
		Phone:    phone,
		Password: hashedPassword,
	}
	if err := s.identityRepo.Create(identity); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return identity, nil
}

// Login verifies credentials and mints a fresh token pair. Unknown phone and
// password mismatch are indistinguishable to the caller.
func (s *AuthService) Login(phone, password string) (*model.TokenPair, error) {
	identity, err := s.identityRepo.GetByPhone(phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, identity.Password) {
		logger.Log.WithField("identity_id", identity.ID).Warn("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(identity)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issueRefreshToken(identity.ID)
	if err != nil {
		return nil, err
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IsAdmin:      identity.IsAdmin,
	}, nil
}

// Refresh rotates a refresh token and mints a new access token. The old
// refresh token is invalidated atomically; presenting an expired, unknown or
// already-rotated token fails with ErrInvalidToken.
func (s *AuthService) Refresh(refreshToken string) (*model.TokenPair, error) {
	oldHash := hashRefreshToken(refreshToken)

	stored, err := s.tokenRepo.GetByTokenHash(oldHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		// Expired chains are cleaned up lazily on the next refresh attempt.
		return nil, ErrInvalidToken
	}

	identity, err := s.identityRepo.GetByID(stored.IdentityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	newValue := uuid.NewString()
	newToken := &model.RefreshToken{
		IdentityID: identity.ID,
		TokenHash:  hashRefreshToken(newValue),
		ExpiresAt:  time.Now().Add(config.AppConfig.RefreshTokenTTL()),
	}
	if err := s.tokenRepo.Rotate(oldHash, newToken); err != nil {
		if err == sql.ErrNoRows {
			// Lost the race against a concurrent refresh of the same chain.
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	accessToken, err := s.generateAccessToken(identity)
	if err != nil {
		return nil, err
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newValue,
		IsAdmin:      identity.IsAdmin,
	}, nil
}

// Logout invalidates every refresh token chain for the identity.
func (s *AuthService) Logout(identityID int) error {
	return s.tokenRepo.DeleteByIdentityID(identityID)
}

func (s *AuthService) generateAccessToken(identity *model.Identity) (string, error) {
	expirationTime := time.Now().Add(config.AppConfig.AccessTokenTTL())

	claims := &model.AppClaims{
		IdentityID: identity.ID,
		IsAdmin:    identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Phone,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(getJwtKey())
	if err != nil {
		logger.Log.WithError(err).WithField("identity_id", identity.ID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

func (s *AuthService) issueRefreshToken(identityID int) (string, error) {
	value := uuid.NewString()
	token := &model.RefreshToken{
		IdentityID: identityID,
		TokenHash:  hashRefreshToken(value),
		ExpiresAt:  time.Now().Add(config.AppConfig.RefreshTokenTTL()),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", err
	}
	return value, nil
}

func hashRefreshToken(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
