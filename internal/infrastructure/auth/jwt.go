// Package auth verifies the access tokens issued by the hosted auth service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/masterly-ai/masterly/internal/shared/biztime"
	"github.com/masterly-ai/masterly/internal/shared/config"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
)

var ErrInvalidSubject = errors.New("token subject is not a valid user id")

const tokenType = "access token"

// Claims are the access token claims the backend relies on. Subject is the
// user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Verify parses an HS256 token and returns its claims. The issuer and
// audience are checked when configured. Failures are *errors.AuthError:
// token_expired for an expired token, token_invalid otherwise.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(biztime.NowUTC),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpiredError(tokenType)
		}
		return nil, fmt.Errorf("failed to parse token: %w: %w", err, apperrors.NewTokenInvalidError(tokenType))
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewTokenInvalidError(tokenType)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubject, apperrors.NewTokenInvalidError(tokenType))
	}
	return claims, nil
}

// UserID verifies the token and returns its subject.
func (s *JWTService) UserID(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Issue signs an access token for userID. The hosted auth service issues
// production tokens; this is used by the CLI and tests.
func (s *JWTService) Issue(userID string, ttl time.Duration) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		Role: "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
