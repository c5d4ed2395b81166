package enum

// Role represents a user's access level.
//
//	master: full user management plus every admin privilege
//	admin:  browse, cancel/restore, reprint, export and analytics
//	user:   create invoices only
type Role string

const (
	RoleMaster Role = "master"
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
)

func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMaster, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// CanManageUsers reports whether the role may create, delete or modify users.
func (r Role) CanManageUsers() bool {
	return r == RoleMaster
}

// CanAdminister reports whether the role may browse past invoices, mutate
// status, export records and view analytics.
func (r Role) CanAdminister() bool {
	return r == RoleMaster || r == RoleAdmin
}
