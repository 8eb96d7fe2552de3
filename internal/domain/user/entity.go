package user

// Role is the access role carried in the access token's "role" claim.
type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can view every employee's timesheet
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// CanViewCompanyAttendance reports whether the role may read other employees' timesheets.
func (r Role) CanViewCompanyAttendance() bool {
	return r == RoleManager || r == RoleOwner
}
