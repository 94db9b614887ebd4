package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/config"
)

var (
	// ErrMissingToken はトークンが付与されていない場合に返却されます。
	ErrMissingToken = errors.New("auth: missing token")
	// ErrInvalidToken はトークンの検証に失敗した場合に返却されます。
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken は有効期限切れのトークンに返却されます。
	ErrExpiredToken = errors.New("auth: token expired")
)

const clockSkew = 30 * time.Second

// TokenManager は HS256 署名のアクセストークンを発行・検証します。
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewTokenManager は TokenManager を生成します。clock が nil の場合は実時間を使います。
func NewTokenManager(cfg config.AuthConfig, clock clockwork.Clock) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth: jwt secret is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("auth: token ttl must be positive")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		clock:  clock,
	}, nil
}

// Issue はユーザー ID を subject とするトークンを発行します。
func (m *TokenManager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("auth: subject is required")
	}

	now := m.clock.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し subject を返します。
func (m *TokenManager) Verify(raw string) (string, error) {
	if raw == "" {
		return "", ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
