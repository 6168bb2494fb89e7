package dto

import "github.com/yigit/gradebook/internal/app/models"

// StudentDashboard is everything a logged-in student sees
type StudentDashboard struct {
	Student models.Student
	Grades  []models.Grade
	Leaves  []models.Leave
}

// AdminDashboard lists all students for the logged-in admin
type AdminDashboard struct {
	Username string
	Students []models.Student
}

// StudentList is rendered by the registered-students page
type StudentList struct {
	Students []StudentGrades
}
