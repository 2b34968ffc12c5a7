package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"competence-system/internal/authz"
	"competence-system/internal/dto"
	"competence-system/internal/entities"
	"competence-system/pkg/contextkeys"
	apperrors "competence-system/pkg/errors"
	"competence-system/pkg/service"
	"competence-system/pkg/utils"
)

// UserResolver is the slice of the user repository the gate needs to honor
// deactivation on every request.
type UserResolver interface {
	FindActiveUserByID(ctx context.Context, id uint64) (*entities.User, error)
}

type AuthMiddleware struct {
	tokenService service.TokenService
	users        UserResolver
	logger       *zap.Logger
}

func NewAuthMiddleware(tokenService service.TokenService, users UserResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		users:        users,
		logger:       logger,
	}
}

// Auth is the per-request gate. A missing token is 401; a token that fails
// to decode for any reason, expiry included, is a blanket 403 at this
// layer. A decoded token is never trusted on its own: the user is
// re-resolved from the store so deactivation and role changes take effect
// before the token expires.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Warn("auth: missing Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("auth: malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.tokenService.Decode(parts[1])
		if err != nil {
			m.logger.Warn("auth: token rejected", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrTokenRejected, m.logger)
		}

		user, err := m.users.FindActiveUserByID(c.Request().Context(), claims.UserID)
		if err != nil {
			m.logger.Warn("auth: token holder not found or inactive", zap.Uint64("userID", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrUnauthenticated, m.logger)
		}

		authUser := dto.NewAuthUser(user)
		ctx := context.WithValue(c.Request().Context(), contextkeys.AuthUserKey, &authUser)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// Authorize gates an operation against the capability table using the
// role resolved from the store, not the one embedded in the token.
func (m *AuthMiddleware) Authorize(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := utils.GetAuthUser(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !authz.Can(user.RoleType, op) {
				m.logger.Warn("authorize: operation denied",
					zap.Uint64("userID", user.ID),
					zap.String("role", user.RoleType),
					zap.String("operation", string(op)),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
