package authz

import "competence-system/internal/entities"

// Operation names every role-gated endpoint in the system.
type Operation string

const (
	UsersList      Operation = "users:list"
	UsersGet       Operation = "users:get"
	UsersCreate    Operation = "users:create"
	UsersUpdate    Operation = "users:update"
	UsersDelete    Operation = "users:delete"
	PasswordsReset Operation = "passwords:reset"

	SkillsCreate Operation = "skills:create"
	SkillsUpdate Operation = "skills:update"
	SkillsDelete Operation = "skills:delete"

	AssessmentsCreate Operation = "assessments:create"
	AssessmentsUpdate Operation = "assessments:update"

	ReportsExport Operation = "reports:export"
)

// allowed is the single capability table consumed by the authorization
// middleware. Adding a gated endpoint means adding a row here, not
// sprinkling role literals through handlers.
var allowed = map[Operation][]string{
	UsersList:      {entities.RoleAdmin, entities.RoleHR, entities.RoleManager, entities.RoleLeader},
	UsersGet:       {entities.RoleAdmin, entities.RoleHR},
	UsersCreate:    {entities.RoleAdmin, entities.RoleHR},
	UsersUpdate:    {entities.RoleAdmin, entities.RoleHR},
	UsersDelete:    {entities.RoleAdmin},
	PasswordsReset: {entities.RoleAdmin, entities.RoleHR},

	SkillsCreate: {entities.RoleAdmin, entities.RoleHR},
	SkillsUpdate: {entities.RoleAdmin, entities.RoleHR},
	SkillsDelete: {entities.RoleAdmin, entities.RoleHR},

	AssessmentsCreate: {entities.RoleAdmin, entities.RoleHR, entities.RoleManager, entities.RoleLeader},
	AssessmentsUpdate: {entities.RoleAdmin, entities.RoleHR, entities.RoleManager, entities.RoleLeader},

	ReportsExport: {entities.RoleAdmin, entities.RoleHR, entities.RoleLeader},
}

// Can reports whether role may perform op. Unknown operations deny.
func Can(role string, op Operation) bool {
	for _, r := range allowed[op] {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles exposes the capability row for an operation.
func AllowedRoles(op Operation) []string {
	roles := make([]string, len(allowed[op]))
	copy(roles, allowed[op])
	return roles
}
