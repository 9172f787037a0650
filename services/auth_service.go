package services

import (
	"context"
	"fmt"
	"time"

	"github.com/PoojanJaviya/chess-pairing/utils"
	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 24 * time.Hour

type AuthService interface {
	// Login checks the director password against the configured bcrypt hash
	// and returns a signed bearer token.
	Login(ctx context.Context, password string) (string, error)
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
}

func NewAuthService(passwordHash string, jwtSecret []byte) AuthService {
	return &authService{passwordHash: passwordHash, jwtSecret: jwtSecret}
}

func (s *authService) Login(_ context.Context, password string) (string, error) {
	if !utils.CheckPasswordHash(password, s.passwordHash) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "director",
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
