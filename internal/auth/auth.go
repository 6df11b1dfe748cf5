package auth

import (
	"errors"
	"fmt"
	"time"

	"awards-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims are the JWT claims carried by an admin session token
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and validates admin session tokens. There is a single
// admin account, configured by email and bcrypt password hash.
type Service struct {
	secret        []byte
	adminEmail    string
	adminPassHash string
	expiration    time.Duration
}

// NewService creates an auth service from config
func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:        []byte(cfg.JWT.Secret),
		adminEmail:    cfg.Admin.Email,
		adminPassHash: cfg.Admin.PasswordHash,
		expiration:    cfg.JWT.Expiration,
	}
}

// Login verifies the admin credentials and returns a signed token
func (s *Service) Login(email, password string) (string, error) {
	if email != s.adminEmail {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPassHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(email)
}

func (s *Service) generateToken(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
