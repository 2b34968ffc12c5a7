package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	employeeIDRegex = regexp.MustCompile(`^EMP\d{3,6}$`)
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// RegisterCustomValidations wires the domain rules into the validator
// instance used by echo.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("employee_id", isEmployeeID); err != nil {
		return err
	}
	if err := v.RegisterValidation("role_type", isRoleType); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

// isEmployeeID enforces the EMP001 format: EMP followed by 3-6 digits.
func isEmployeeID(fl validator.FieldLevel) bool {
	return employeeIDRegex.MatchString(fl.Field().String())
}

func isRoleType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "employee", "manager", "hr", "admin", "leader":
		return true
	}
	return false
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}
