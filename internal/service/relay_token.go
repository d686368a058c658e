package service

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

const issuer = "lcbot"

// GenerateRelayToken signs a HS256 token for a relay with the JWT_SECRET
func GenerateRelayToken(relayName string, ttl time.Duration) (string, time.Time, error) {
	secret := os.Getenv(KeyJWTSecret)
	if secret == "" {
		err := fmt.Errorf("%w, %s is not set", bot_errors.ErrInternal, KeyJWTSecret)
		log.Error(err)
		return "", time.Time{}, err
	}
	if relayName == "" {
		return "", time.Time{}, fmt.Errorf("%w, relay name is required", bot_errors.ErrInvalidInput)
	}

	now := time.Now()
	expiry := now.Add(ttl)
	claims := RelayClaims{
		RelayName: relayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   relayName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		err = fmt.Errorf("%w, cannot sign relay token, %w", bot_errors.ErrInternal, err)
		log.Error(err)
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

// ParseRelayToken verifies the signature and expiry of a relay token
func ParseRelayToken(tokenString string) (RelayClaims, error) {
	secret := os.Getenv(KeyJWTSecret)
	if secret == "" {
		err := fmt.Errorf("%w, %s is not set", bot_errors.ErrInternal, KeyJWTSecret)
		log.Error(err)
		return RelayClaims{}, err
	}

	var claims RelayClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return RelayClaims{}, fmt.Errorf("%w, invalid relay token, %v", bot_errors.ErrUnAuthorized, err)
	}
	if claims.RelayName == "" {
		return RelayClaims{}, fmt.Errorf("%w, token carries no relay name", bot_errors.ErrUnAuthorized)
	}
	return claims, nil
}
