package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by both token kinds. Access tokens
// carry the role list; refresh tokens carry the subject only.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil provides signed token generation and verification
type JWTUtil struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTUtil creates a new JWTUtil. accessTTL must be shorter than
// refreshTTL; the config loader enforces this.
func NewJWTUtil(secretKey string, accessTTL, refreshTTL time.Duration) *JWTUtil {
	return &JWTUtil{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL returns the configured access token lifetime
func (ju *JWTUtil) AccessTTL() time.Duration {
	return ju.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime
func (ju *JWTUtil) RefreshTTL() time.Duration {
	return ju.refreshTTL
}

// GenerateAccessToken mints a short-lived token carrying the subject's
// phone number and role list. issuer is the URL of the originating endpoint.
func (ju *JWTUtil) GenerateAccessToken(phoneNumber string, roles []string, issuer string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ju.accessTTL)
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   phoneNumber,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// GenerateRefreshToken mints a longer-lived token carrying the subject only
func (ju *JWTUtil) GenerateRefreshToken(phoneNumber string, issuer string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ju.refreshTTL)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   phoneNumber,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken checks signature and expiry and returns the decoded claims.
// Failure kinds are distinguishable via errors.Is against jwt.ErrTokenExpired,
// jwt.ErrTokenSignatureInvalid and jwt.ErrTokenMalformed.
func (ju *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
