package application

import "github.com/lavanderia/laundries-cli/internal/domain"

// Console routes. Command paths double as redirect targets in guard
// decisions.
const (
	RouteLogin        = "login"
	RouteHome         = "home"
	RouteEmployeeHome = "home employee"
	RouteManagerHome  = "home manager"
	RouteAdminHome    = "home admin"
)

// Shell names the navigational frame wrapped around a role's views.
type Shell string

const (
	ShellEmployee Shell = "employee"
	ShellManager  Shell = "manager"
	ShellAdmin    Shell = "admin"
)

// RoleView pairs a role's shell with its default landing route. Both
// come from the same table row, so they cannot diverge.
type RoleView struct {
	Shell   Shell
	Landing string
}

var roleViews = map[domain.Role]RoleView{
	domain.RoleEmployee: {Shell: ShellEmployee, Landing: RouteEmployeeHome},
	domain.RoleManager:  {Shell: ShellManager, Landing: RouteManagerHome},
	domain.RoleAdmin:    {Shell: ShellAdmin, Landing: RouteAdminHome},
}

// ViewFor resolves the shell/landing pair for a role. Unknown roles get
// the employee pair rather than an error, matching how the console has
// always treated unrecognized accounts.
func ViewFor(role domain.Role) RoleView {
	if view, ok := roleViews[role]; ok {
		return view
	}
	return roleViews[domain.RoleEmployee]
}
