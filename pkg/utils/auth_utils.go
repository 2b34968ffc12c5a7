package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"competence-system/internal/dto"
	"competence-system/pkg/contextkeys"
	apperrors "competence-system/pkg/errors"
)

func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(bytes), nil
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// NormalizeEmail applies the one normalization used everywhere an email is
// compared or stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func GetAuthUser(ctx context.Context) (*dto.AuthUser, error) {
	user, ok := ctx.Value(contextkeys.AuthUserKey).(*dto.AuthUser)
	if !ok || user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
