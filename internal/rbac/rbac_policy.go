package rbac

import "go-leave/internal/domain"

const (
	ResourceEmployee  = "employee"
	ResourceLeave     = "leave"
	ResourceDashboard = "dashboard"
	ResourceImport    = "import"
	ResourceUser      = "user"

	ActionRead  = "read"
	ActionWrite = "write"
)

// DefaultPolicies grants read access to viewers, writes to hr and everything
// to admins.
var DefaultPolicies = [][]string{
	{domain.RoleViewer, ResourceEmployee, ActionRead},
	{domain.RoleViewer, ResourceLeave, ActionRead},
	{domain.RoleViewer, ResourceDashboard, ActionRead},
	{domain.RoleViewer, ResourceImport, ActionRead},
	{domain.RoleHR, ResourceEmployee, ActionWrite},
	{domain.RoleHR, ResourceLeave, ActionWrite},
	{domain.RoleHR, ResourceImport, ActionWrite},
	{domain.RoleAdmin, "*", "*"},
}

// DefaultRoleInheritance lists (member, parent) pairs.
var DefaultRoleInheritance = [][]string{
	{domain.RoleHR, domain.RoleViewer},
	{domain.RoleAdmin, domain.RoleHR},
}
