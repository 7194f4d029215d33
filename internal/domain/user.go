package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User is an account profile. Authentication happens upstream; the service
// only reads the role and display name.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// ParseRole maps anything but "admin" to the customer role.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
