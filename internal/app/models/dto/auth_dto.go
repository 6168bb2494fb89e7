package dto

// LoginRequest represents the login form. It carries no binding rules:
// missing or oversized values fail like any other wrong credentials.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// RegisterRequest represents the student/admin registration form and the
// admin's add-student form
type RegisterRequest struct {
	Username string `form:"username" binding:"required,max=50"`
	Password string `form:"password" binding:"required"`
}

// IndexPage is rendered on GET / and on a failed login
type IndexPage struct {
	Error string
}
