package models

// Role is an access level carried in API token claims.
type Role string

const (
	// RoleAdmin grants full access including backup restore and repair
	RoleAdmin Role = "admin"

	// RoleOperator grants read/write access to catalog and bus operations
	RoleOperator Role = "operator"

	// RoleViewer grants read-only access
	RoleViewer Role = "viewer"
)

// Valid reports whether r names a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}
