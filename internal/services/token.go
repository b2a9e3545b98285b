package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
)

// TokenService issues and verifies HS256 access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token carrying the account id and role
func (s *TokenService) Issue(usuario *models.Usuario) (string, error) {
	now := s.now()
	claims := models.Claims{
		ID:   usuario.ID.Hex(),
		Role: usuario.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Parse verifies signature, algorithm and expiry. Any failure is reported as models.ErrInvalidToken.
func (s *TokenService) Parse(tokenString string) (*models.Claims, error) {
	if tokenString == "" {
		return nil, models.ErrMissingToken
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: missing id or role", models.ErrInvalidToken)
	}
	return claims, nil
}
