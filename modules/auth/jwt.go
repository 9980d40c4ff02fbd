package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domain "github.com/example/enoma/domain/user"
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// SessionTokenDuration is the fixed lifetime of a session token. The token
// is the sole session representation; there is no server-side revocation.
const SessionTokenDuration = 7 * 24 * time.Hour

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	SecretKey     string
	TokenDuration time.Duration
	Issuer        string
}

// DefaultJWTConfig returns the default JWT configuration without a secret;
// the secret always comes from process configuration.
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		TokenDuration: SessionTokenDuration,
		Issuer:        "enoma",
	}
}

// JWTClaims represents the custom claims for session tokens.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager handles session token operations.
type JWTManager struct {
	config JWTConfig
}

// NewJWTManager creates a new JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	if config.TokenDuration == 0 {
		config.TokenDuration = SessionTokenDuration
	}
	return &JWTManager{
		config: config,
	}
}

// SignToken produces a signed session token for the given identity.
func (m *JWTManager) SignToken(claims domain.Claims) (string, error) {
	now := time.Now()
	tokenClaims := JWTClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// VerifyToken validates a session token and returns the identity it carries.
// Every verification failure maps to ErrInvalidToken or ErrExpiredToken so
// callers uniformly treat failure as unauthenticated.
func (m *JWTManager) VerifyToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// TokenDuration returns the session token lifetime.
func (m *JWTManager) TokenDuration() time.Duration {
	return m.config.TokenDuration
}
