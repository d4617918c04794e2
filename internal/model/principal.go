package model

// Principal is the authenticated identity attached to a request by the auth
// middleware. Disabled accounts never become principals.
type Principal struct {
	UserID   int64
	Username string
	Role     UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsModerator() bool {
	return p.Role == RoleModerator
}

func (p Principal) IsViewer() bool {
	return p.Role == RoleViewer
}
