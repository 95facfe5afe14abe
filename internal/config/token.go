package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// TokenConfig holds the signing secret and token lifetimes
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// LoadTokenConfig loads token configuration from environment variables.
// JWT_SECRET_KEY is required; lifetimes default to 30 minutes for access
// tokens and 168 hours (7 days) for refresh tokens.
func LoadTokenConfig() (*TokenConfig, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	accessMinutes := int64(30)
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			log.Printf("Invalid ACCESS_TOKEN_EXPIRE_MINUTES %q, defaulting to %d", v, accessMinutes)
		} else {
			accessMinutes = parsed
		}
	}

	refreshHours := int64(168)
	if v := os.Getenv("REFRESH_TOKEN_EXPIRE_HOURS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			log.Printf("Invalid REFRESH_TOKEN_EXPIRE_HOURS %q, defaulting to %d", v, refreshHours)
		} else {
			refreshHours = parsed
		}
	}

	cfg := &TokenConfig{
		Secret:     secret,
		AccessTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTTL: time.Duration(refreshHours) * time.Hour,
	}

	// Access tokens must always expire before the refresh token that
	// accompanies them.
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, fmt.Errorf("access token lifetime (%v) must be shorter than refresh token lifetime (%v)", cfg.AccessTTL, cfg.RefreshTTL)
	}

	return cfg, nil
}
