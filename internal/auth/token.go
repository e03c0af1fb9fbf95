package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"devconnector/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token validation failures. These are distinguished for logging and
// observability only; callers must surface all of them as a single
// unauthenticated outcome so the API never leaks which check failed.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

const (
	tokenIssuer   = "devconnector-api"
	tokenAudience = "devconnector-client"
)

// TokenService issues and validates signed bearer tokens. The secret is
// immutable process-wide configuration, so a single instance is safe for
// concurrent use without synchronization.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService returns a TokenService signing with the given symmetric
// secret. Tokens live for ttl; rotation of the secret invalidates every
// previously issued token.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed HS256 token embedding the identity claims and an
// expiry of now+ttl.
func (s *TokenService) Issue(identity models.Identity) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("token secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    strconv.FormatUint(uint64(identity.ID), 10),
		"name":   identity.Name,
		"avatar": identity.Avatar,
		"iss":    tokenIssuer,
		"aud":    tokenAudience,
		"exp":    now.Add(s.ttl).Unix(),
		"iat":    now.Unix(),
		"nbf":    now.Unix(),
		"jti":    uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies the signature and expiry of a token and returns the
// embedded identity. Validation is all-or-nothing: a malformed token, a
// signature mismatch, a wrong algorithm, or an expired claim all fail.
func (s *TokenService) Validate(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	})
	if err != nil {
		return models.Identity{}, classifyTokenError(err)
	}
	if !token.Valid {
		return models.Identity{}, ErrTokenSignature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return models.Identity{}, ErrTokenMalformed
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.Identity{}, ErrTokenMalformed
	}

	identity := models.Identity{ID: uint(id)}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if avatar, ok := claims["avatar"].(string); ok {
		identity.Avatar = avatar
	}
	return identity, nil
}

// classifyTokenError folds jwt library errors into the package taxonomy.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenSignature
	}
}
