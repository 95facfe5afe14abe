package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auth_service/internal/model"
	"auth_service/internal/repository"
	"auth_service/internal/utils"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountInactive     = errors.New("account is not active")
	ErrBadCredentials      = errors.New("invalid phone number or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService authenticates credentials and mints sessions. The three
// login failures (not found, inactive, bad password) stay distinct here;
// the HTTP layer collapses them into one generic response so callers
// cannot probe which accounts exist.
type AuthService interface {
	Login(ctx context.Context, username, password, issuer string) (*model.Session, error)
	Refresh(ctx context.Context, refreshToken, issuer string) (*model.Session, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	jwtUtil     *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo repository.AccountRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		accountRepo: accountRepo,
		jwtUtil:     jwtUtil,
	}
}

// Login verifies a credential pair and issues an access/refresh token pair.
// Nothing is persisted; session validity lives entirely in the tokens.
func (s *authService) Login(ctx context.Context, username, password, issuer string) (*model.Session, error) {
	account, err := s.accountRepo.FindByPhone(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding account by phone: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if account.Status != model.StatusActive {
		return nil, ErrAccountInactive
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		return nil, ErrBadCredentials
	}

	accessToken, accessExpiry, err := s.jwtUtil.GenerateAccessToken(account.PhoneNumber, []string{string(account.Role)}, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiry, err := s.jwtUtil.GenerateRefreshToken(account.PhoneNumber, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.Session{
		AccessToken:        accessToken,
		ExpiresIn:          accessExpiry.UnixMilli(),
		RefreshToken:       refreshToken,
		RefreshTokenExpire: refreshExpiry.UnixMilli(),
		IssuedAt:           time.Now().UnixMilli(),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented refresh token is echoed back with its original expiry, so
// repeated refreshes never extend the session past the refresh token's
// own lifetime. Roles are re-read from the account, not trusted from the
// old token, and a soft-deleted account can no longer refresh.
func (s *authService) Refresh(ctx context.Context, refreshToken, issuer string) (*model.Session, error) {
	claims, err := s.jwtUtil.ValidateToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry claim", ErrInvalidRefreshToken)
	}

	account, err := s.accountRepo.FindByPhone(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("error finding account by phone: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	accessToken, accessExpiry, err := s.jwtUtil.GenerateAccessToken(account.PhoneNumber, []string{string(account.Role)}, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &model.Session{
		AccessToken:        accessToken,
		ExpiresIn:          accessExpiry.UnixMilli(),
		RefreshToken:       refreshToken,
		RefreshTokenExpire: claims.ExpiresAt.UnixMilli(),
		IssuedAt:           time.Now().UnixMilli(),
	}, nil
}
