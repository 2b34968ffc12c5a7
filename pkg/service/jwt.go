package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "competence-system/pkg/errors"
)

// IdentityClaims is the signed claim set carried by every issued token.
type IdentityClaims struct {
	UserID     uint64 `json:"userId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Generate(userID uint64, email, role, employeeID string) (string, error)
	Decode(tokenString string) (*IdentityClaims, error)
	TokenTTL() time.Duration
}

type tokenService struct {
	secretKey string
	tokenTTL  time.Duration
}

func NewTokenService(secretKey string, tokenTTL time.Duration) TokenService {
	return &tokenService{secretKey: secretKey, tokenTTL: tokenTTL}
}

func (s *tokenService) Generate(userID uint64, email, role, employeeID string) (string, error) {
	now := time.Now()
	claims := &IdentityClaims{
		UserID:     userID,
		Email:      email,
		Role:       role,
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode verifies signature and structure and surfaces expiry as a distinct
// condition: an expired token should prompt a re-login, a tampered one is a
// security event.
func (s *tokenService) Decode(tokenString string) (*IdentityClaims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

func (s *tokenService) TokenTTL() time.Duration {
	return s.tokenTTL
}
