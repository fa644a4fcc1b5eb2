package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/redis/go-redis/v9"
	"github.com/synesthesie/gallery/internal/config"
	"github.com/synesthesie/gallery/internal/models"
	"github.com/synesthesie/gallery/pkg/crypto"
	jwtpkg "github.com/synesthesie/gallery/pkg/jwt"
	"gorm.io/gorm"
)

type AuthService struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   *config.Config
}

// NewAuthService builds the auth service. redis may be nil, in which case
// access tokens are not checked against the logout blacklist.
func NewAuthService(db *gorm.DB, redis *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		db:    db,
		redis: redis,
		cfg:   cfg,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(username, password string) (string, string, *models.User, error) {
	var user models.User

	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, errors.Unauthorizedf("invalid credentials")
		}
		return "", "", nil, errors.Trace(err)
	}

	if !user.IsActive {
		return "", "", nil, errors.Unauthorizedf("account is deactivated")
	}

	if !crypto.CheckPassword(password, user.Password) {
		return "", "", nil, errors.Unauthorizedf("invalid credentials")
	}

	accessToken, err := jwtpkg.GenerateToken(user.ID.String(), user.IsAdmin, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", "", nil, errors.Trace(err)
	}

	refreshToken, err := jwtpkg.GenerateToken(user.ID.String(), user.IsAdmin, jwtpkg.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return "", "", nil, errors.Trace(err)
	}

	// Store refresh token in database
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshTokenDuration),
	}
	if err := s.db.Create(refreshTokenModel).Error; err != nil {
		return "", "", nil, errors.Trace(err)
	}

	return accessToken, refreshToken, &user, nil
}

// RefreshToken generates new access token from refresh token
func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwtpkg.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return "", errors.Unauthorizedf("invalid refresh token")
	}

	if claims.TokenType != jwtpkg.RefreshToken {
		return "", errors.Unauthorizedf("invalid token type")
	}

	// Check if refresh token exists in database
	var tokenModel models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&tokenModel).Error; err != nil {
		return "", errors.Unauthorizedf("refresh token not found")
	}

	if time.Now().After(tokenModel.ExpiresAt) {
		return "", errors.Unauthorizedf("refresh token expired")
	}

	accessToken, err := jwtpkg.GenerateToken(claims.UserID, claims.IsAdmin, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", errors.Trace(err)
	}

	return accessToken, nil
}

// Logout removes the user's refresh tokens and blacklists the access token
// until it would have expired anyway.
func (s *AuthService) Logout(userID uuid.UUID, accessToken string) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return errors.Trace(err)
	}
	if s.redis == nil || accessToken == "" {
		return nil
	}
	ctx := context.Background()
	if err := s.redis.Set(ctx, blacklistKey(accessToken), "1", s.cfg.JWTAccessTokenDuration).Err(); err != nil {
		log.Printf("WARN: Could not blacklist access token: %v", err)
	}
	return nil
}

// ValidateAccessToken validates an access token and returns claims
func (s *AuthService) ValidateAccessToken(token string) (*jwtpkg.Claims, error) {
	claims, err := jwtpkg.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, errors.Unauthorizedf("invalid token")
	}

	if claims.TokenType != jwtpkg.AccessToken {
		return nil, errors.Unauthorizedf("invalid token type")
	}

	// If redis is down, we allow the request to proceed
	if s.redis != nil {
		ctx := context.Background()
		exists, err := s.redis.Exists(ctx, blacklistKey(token)).Result()
		if err != nil {
			log.Printf("WARN: Could not connect to Redis to check token blacklist: %v", err)
		} else if exists > 0 {
			return nil, errors.Unauthorizedf("token is blacklisted")
		}
	}

	return claims, nil
}

// CleanupExpiredTokens removes expired refresh tokens
func (s *AuthService) CleanupExpiredTokens() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:token:%s", token)
}
