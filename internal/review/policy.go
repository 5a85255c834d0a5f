package review

// Operation enumerates the role-gated review operations
type Operation int

const (
	OperationCreate Operation = iota
	OperationDeactivate
)

// Roles recognised by the review policy
const (
	RoleBuyer = "buyer"
	RoleAdmin = "admin"
)

// Allowed maps a caller role to permitted operations. Buyers create,
// admins deactivate, every other combination is denied.
func Allowed(role string, op Operation) bool {
	switch op {
	case OperationCreate:
		return role == RoleBuyer
	case OperationDeactivate:
		return role == RoleAdmin
	}
	return false
}
