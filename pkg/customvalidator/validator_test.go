package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestEmployeeIDRule(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		EmployeeID string `validate:"employee_id"`
	}

	valid := []string{"EMP001", "EMP123456", "EMP999"}
	for _, id := range valid {
		assert.NoError(t, v.Struct(payload{EmployeeID: id}), id)
	}

	invalid := []string{"", "EMP1", "EMP12", "EMP1234567", "emp001", "EMPABC", "001EMP", "EMP 001"}
	for _, id := range invalid {
		assert.Error(t, v.Struct(payload{EmployeeID: id}), id)
	}
}

func TestRoleTypeRule(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		RoleType string `validate:"role_type"`
	}

	for _, role := range []string{"employee", "manager", "hr", "admin", "leader"} {
		assert.NoError(t, v.Struct(payload{RoleType: role}), role)
	}
	for _, role := range []string{"", "Admin", "superuser", "HR"} {
		assert.Error(t, v.Struct(payload{RoleType: role}), role)
	}
}

func TestEmailRuleOverride(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Email string `validate:"email"`
	}

	assert.NoError(t, v.Struct(payload{Email: "user@nexusai.com"}))
	assert.NoError(t, v.Struct(payload{Email: "first.last+tag@sub.example.org"}))

	for _, email := range []string{"", "plain", "user@", "@host.com", "user@host"} {
		assert.Error(t, v.Struct(payload{Email: email}), email)
	}
}
