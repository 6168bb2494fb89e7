package repositories

import (
	"github.com/Masterminds/squirrel"

	"github.com/yigit/gradebook/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	AdminRepository   *AdminRepository
	GradeRepository   *GradeRepository
	LeaveRepository   *LeaveRepository

	placeholder squirrel.PlaceholderFormat
}

// NewRepositories initializes all repositories on top of the connection pool
func NewRepositories(database *db.Database) *Repositories {
	return newRepositories(database, database.Placeholder())
}

func newRepositories(q db.Querier, placeholder squirrel.PlaceholderFormat) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(q, placeholder),
		AdminRepository:   NewAdminRepository(q, placeholder),
		GradeRepository:   NewGradeRepository(q, placeholder),
		LeaveRepository:   NewLeaveRepository(q, placeholder),
		placeholder:       placeholder,
	}
}

// WithTx returns a copy of every repository bound to tx
func (r *Repositories) WithTx(tx db.Querier) *Repositories {
	return newRepositories(tx, r.placeholder)
}
