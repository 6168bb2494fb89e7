package models

// RoleType defines the session role of an authenticated account
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// Valid reports whether r is one of the known roles
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// LeaveStatus is the approval state of a leave request
type LeaveStatus string

// A leave starts pending and can only move to approved.
const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
)
