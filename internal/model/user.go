package model

// Role names match the roles issued by the identity provider in the JWT
// "role" claim.
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleHallOwner    Role = "hall_owner"
	RoleServiceOwner Role = "service_owner"
	RoleAdmin        Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleHallOwner, RoleServiceOwner, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated actor of a request.  Users themselves live
// with the external identity provider; this service only ever sees the
// subject and role carried by a verified access token.
type Identity struct {
	UserID uint64
	Role   Role
}

// IsAdmin reports whether the actor is an administrator.  A nil identity is
// never an admin.
func (i *Identity) IsAdmin() bool { return i != nil && i.Role == RoleAdmin }
