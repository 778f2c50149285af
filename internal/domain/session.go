package domain

// Session is the authenticated caller of a single request.
type Session struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the caller is an administrator.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Owns reports whether the caller is the driver with the given id.
func (s Session) Owns(driverID int64) bool {
	return s.Role == RoleDriver && s.UserID == driverID
}
