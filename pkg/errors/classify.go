package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// Classify maps any error escaping a handler into the uniform taxonomy.
// Handlers never pick status codes themselves; this is the single place
// where low-level failures become client-facing responses.
func Classify(err error) *HttpError {
	if err == nil {
		return nil
	}

	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return &HttpError{
			Code:        http.StatusServiceUnavailable,
			Kind:        KindServiceUnavailable,
			Message:     "Database connection failed",
			Err:         err,
			Operational: true,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	if errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) {
		return ErrInvalidToken
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return classifyValidationErrors(validationErrs)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return ErrRouteNotFound
		}
		return NewHttpError(echoErr.Code, KindInternal, fmt.Sprintf("%v", echoErr.Message), err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &HttpError{
			Code:        http.StatusServiceUnavailable,
			Kind:        KindServiceUnavailable,
			Message:     "Request timed out",
			Err:         err,
			Operational: true,
		}
	}

	return NewInternalError(err)
}

func classifyPgError(pgErr *pgconn.PgError) *HttpError {
	switch pgErr.Code {
	case "23505": // unique_violation
		field := constraintField(pgErr)
		return NewHttpError(http.StatusConflict, KindConflict, fmt.Sprintf("%s already exists", field), pgErr)
	case "23503": // foreign_key_violation
		field := constraintField(pgErr)
		return NewHttpError(http.StatusBadRequest, KindInvalidReference, fmt.Sprintf("Invalid %s reference", field), pgErr)
	case "23502": // not_null_violation
		field := pgErr.ColumnName
		if field == "" {
			field = "field"
		}
		return NewHttpError(http.StatusBadRequest, KindValidationFailed, fmt.Sprintf("%s is required", field), pgErr)
	case "23514": // check_violation
		return NewHttpError(http.StatusBadRequest, KindValidationFailed, "Data validation failed", pgErr)
	}
	return NewInternalError(pgErr)
}

// constraintField pulls the offending column out of a constraint's detail
// line ("Key (email)=(...) already exists"), falling back to the constraint
// name.
func constraintField(pgErr *pgconn.PgError) string {
	detail := pgErr.Detail
	if start := strings.Index(detail, "Key ("); start >= 0 {
		rest := detail[start+5:]
		if end := strings.Index(rest, ")"); end > 0 {
			return rest[:end]
		}
	}
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "field"
}

func classifyValidationErrors(errs validator.ValidationErrors) *HttpError {
	details := make(map[string][]string, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		details[field] = append(details[field], messageForTag(fe))
	}
	return NewValidationError("Validation failed", details)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s too long", fe.Field())
	case "employee_id":
		return "Employee ID must be in format EMP followed by 3-6 digits (e.g. EMP001)"
	case "role_type":
		return "Role type must be one of: employee, manager, hr, admin, leader"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
