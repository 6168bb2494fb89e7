package models

import "strings"

// Built-in subject labels
const (
	SubjectMath    = "Math"
	SubjectScience = "Science"
)

// Grade is one student's score in one subject. Score is nil for a subject
// column that was seeded but not graded yet.
type Grade struct {
	ID        int64  `json:"id" db:"id"`
	StudentID int64  `json:"studentId" db:"student_id"`
	Subject   string `json:"subject" db:"subject"`
	Score     *int   `json:"score" db:"score"`
}

// SubjectKey returns the form-field suffix for a subject label,
// e.g. "Math" => "math", "Art History" => "art_history".
func SubjectKey(subject string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(subject)), " ", "_")
}
