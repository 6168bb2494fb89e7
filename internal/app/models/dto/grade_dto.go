package dto

import "github.com/yigit/gradebook/internal/app/models"

// AddSubjectRequest represents the admin's new-subject form
type AddSubjectRequest struct {
	SubjectName string `form:"subject_name" binding:"required,max=20"`
}

// GradeEntry is one parsed score from the grade-entry form
type GradeEntry struct {
	StudentID int64
	Subject   string
	Score     int
}

// SubjectColumn is a column of the grade sheet
type SubjectColumn struct {
	Label string
	Key   string
}

// GradeCell is one input of the grade sheet
type GradeCell struct {
	FieldName string
	Score     *int
}

// GradeSheetRow holds one student's cells in column order
type GradeSheetRow struct {
	StudentID int64
	Username  string
	Cells     []GradeCell
}

// GradeSheet is the admin grade-entry view: students by subjects
type GradeSheet struct {
	Subjects []SubjectColumn
	Rows     []GradeSheetRow
}

// StudentGrades groups a student with their grade rows
type StudentGrades struct {
	Student models.Student
	Grades  []models.Grade
}
