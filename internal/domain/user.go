package domain

import (
	"strings"
	"time"
)

// Role is the access role of a user.
type Role string

// List of roles
const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

var allowedRoles = [...]Role{RoleAdmin, RoleDriver}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User is an account of an administrator or a driver.
// PasswordHash never leaves the service layer.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Role          Role
	Name          string
	Phone         string
	IsAvailable   bool
	VehicleInfo   string
	LicenseNumber string
	CreatedAt     time.Time
}

// IsDriver reports whether the user has the driver role.
func (u User) IsDriver() bool { return u.Role == RoleDriver }

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DriverFilter narrows a driver listing.
type DriverFilter struct {
	AvailableOnly bool
}

// PartialDriverUpdate carries optional fields to update a driver.
// A nil field means "do not change" that attribute.
type PartialDriverUpdate struct {
	ID            int64
	Name          *string
	Email         *string
	Phone         *string
	VehicleInfo   *string
	LicenseNumber *string
	IsAvailable   *bool
}

// Empty reports whether the update changes nothing.
func (u PartialDriverUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.VehicleInfo == nil && u.LicenseNumber == nil && u.IsAvailable == nil
}
