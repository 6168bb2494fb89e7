package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"` // bcrypt hash

	// Legacy cached scores, nil until populated outside the app
	Math    *int `json:"math,omitempty" db:"math"`
	Science *int `json:"science,omitempty" db:"science"`
}
