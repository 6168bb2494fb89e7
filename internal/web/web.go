// Package web holds the HTML templates rendered by the controllers.
package web

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	IndexPage           = "index.html"
	RegisterStudentPage = "register_student_page.html"
	RegisterAdminPage   = "register_admin_page.html"
	StudentDashboard    = "dashboard_student.html"
	AdminDashboard      = "dashboard_admin.html"
	LeaveApprovalPage   = "leave_approval.html"
	InputGradesPage     = "input_grades.html"
	RegisteredStudents  = "registered_students.html"
	AddStudentPage      = "add_student_page.html"
)

var funcs = template.FuncMap{
	// score renders a nullable score, empty when ungraded
	"score": func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
}

// Templates parses every embedded page
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
