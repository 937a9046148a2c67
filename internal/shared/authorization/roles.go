package authorization

// UserRole is the role carried in a bearer token and used as the casbin subject.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTechnician UserRole = "technician"
	RoleViewer     UserRole = "viewer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleViewer:
		return true
	}
	return false
}

// ParseUserRole falls back to the least privileged role for unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleViewer
}

// Resources and actions checked by the permission middleware.
const (
	ResourceTickets  = "tickets"
	ResourceDeclines = "declines"

	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)
