package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"competence-system/internal/entities"
)

func TestCan(t *testing.T) {
	cases := []struct {
		name string
		role string
		op   Operation
		want bool
	}{
		{"admin can delete users", entities.RoleAdmin, UsersDelete, true},
		{"hr cannot delete users", entities.RoleHR, UsersDelete, false},
		{"manager can list users", entities.RoleManager, UsersList, true},
		{"leader can list users", entities.RoleLeader, UsersList, true},
		{"employee cannot list users", entities.RoleEmployee, UsersList, false},
		{"hr can reset passwords", entities.RoleHR, PasswordsReset, true},
		{"manager cannot reset passwords", entities.RoleManager, PasswordsReset, false},
		{"manager can create assessments", entities.RoleManager, AssessmentsCreate, true},
		{"employee cannot create assessments", entities.RoleEmployee, AssessmentsCreate, false},
		{"manager cannot export reports", entities.RoleManager, ReportsExport, false},
		{"leader can export reports", entities.RoleLeader, ReportsExport, true},
		{"employee cannot manage skills", entities.RoleEmployee, SkillsCreate, false},
		{"unknown role denied", "superuser", UsersList, false},
		{"unknown operation denied", entities.RoleAdmin, Operation("users:purge"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Can(tc.role, tc.op))
		})
	}
}

func TestAllowedRolesReturnsCopy(t *testing.T) {
	roles := AllowedRoles(UsersDelete)
	assert.Equal(t, []string{entities.RoleAdmin}, roles)

	roles[0] = "mutated"
	assert.Equal(t, []string{entities.RoleAdmin}, AllowedRoles(UsersDelete))
}
