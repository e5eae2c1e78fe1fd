package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	userRepo  ports.UserRepository
	authRepo  ports.AuthRepository
	clock     ports.Clock
	jwtSecret []byte
}

func NewAuthService(userRepo ports.UserRepository, authRepo ports.AuthRepository, clock ports.Clock) *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Warn("JWT_SECRET not set")
	}

	return &AuthService{
		userRepo:  userRepo,
		authRepo:  authRepo,
		clock:     clock,
		jwtSecret: []byte(secret),
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return "", "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	if rtEntity == nil {
		return "", "", errors.New("refresh token not found")
	}
	if rtEntity.Revoked {
		return "", "", errors.New("refresh token revoked")
	}
	if rtEntity.ExpiresAt.Before(s.clock.Now()) {
		return "", "", errors.New("refresh token expired")
	}

	user, err := s.userRepo.GetByID(ctx, rtEntity.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", "", domain.ErrUserNotFound
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	// The refresh token is kept until expiry rather than rotated on every
	// refresh; revocation happens on logout.
	return accessToken, refreshToken, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to get refresh token: %w", err)
	}
	if rtEntity == nil {
		return nil
	}

	return s.authRepo.RevokeRefreshToken(ctx, rtEntity.ID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	rtEntity := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: s.hashToken(refreshToken),
		ExpiresAt: s.clock.Now().Add(7 * 24 * time.Hour),
		Revoked:   false,
	}
	if err := s.authRepo.StoreRefreshToken(ctx, rtEntity); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   now.Add(15 * time.Minute).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
