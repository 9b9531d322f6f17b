package auth

// Roles ordered by privilege.
const (
	RoleViewer   = "viewer"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

var roleLevels = map[string]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

// unsatisfiableLevel is assigned to unknown required roles so they are never met.
const unsatisfiableLevel = 999

// Level returns the privilege level of a user's role; unknown roles get 0.
func Level(role string) int {
	return roleLevels[role]
}

// RequiredLevel returns the level a required role demands; unknown roles can never be satisfied.
func RequiredLevel(role string) int {
	if level, ok := roleLevels[role]; ok {
		return level
	}
	return unsatisfiableLevel
}

// Satisfies reports whether a user holding role have meets the required role.
func Satisfies(have, required string) bool {
	return Level(have) >= RequiredLevel(required)
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}
