package domain

// Role is an open string in session data but the console only
// distinguishes the three known values below. Anything else is routed
// like an employee.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// Member reports whether the role appears in the allow-list.
func (r Role) Member(allowed []Role) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}
