package models

// Leave defines a leave request based on the 'leaves' table
type Leave struct {
	ID        int64       `json:"id" db:"id"`
	StudentID int64       `json:"studentId" db:"student_id"`
	Date      string      `json:"date" db:"date"` // free text, not parsed
	Reason    string      `json:"reason" db:"reason"`
	Status    LeaveStatus `json:"status" db:"status"`

	// Populated by listing queries that join students
	StudentUsername string `json:"studentUsername,omitempty" db:"-"`
}

// IsApproved reports whether the leave has been approved
func (l *Leave) IsApproved() bool {
	return l.Status == LeaveStatusApproved
}
