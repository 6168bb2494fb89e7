package migrations_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradebook/internal/app/migrations"
	"github.com/yigit/gradebook/internal/pkg/dberrors"
	"github.com/yigit/gradebook/internal/testutil"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	database := testutil.NewDatabase(t, testutil.Config(t))

	err := migrations.NewMigrator(database, zerolog.Nop()).Migrate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CountRows(t, database, "schema_migrations"))
	for _, table := range []string{"students", "admins", "grades", "leaves"} {
		assert.Equal(t, 0, testutil.CountRows(t, database, table), table)
	}
}

func TestSchema_GradeIsUniquePerStudentAndSubject(t *testing.T) {
	database := testutil.NewDatabase(t, testutil.Config(t))
	ctx := context.Background()

	_, err := database.ExecContext(ctx, `INSERT INTO students (username, password) VALUES ('alice', 'x')`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, `INSERT INTO grades (student_id, subject, score) VALUES (1, 'Math', 80)`)
	require.NoError(t, err)

	_, err = database.ExecContext(ctx, `INSERT INTO grades (student_id, subject, score) VALUES (1, 'Math', 90)`)
	require.Error(t, err)
	assert.True(t, dberrors.IsUniqueViolation(err))
}

func TestSchema_LeaveStatusIsRestricted(t *testing.T) {
	database := testutil.NewDatabase(t, testutil.Config(t))
	ctx := context.Background()

	_, err := database.ExecContext(ctx, `INSERT INTO students (username, password) VALUES ('alice', 'x')`)
	require.NoError(t, err)

	_, err = database.ExecContext(ctx, `INSERT INTO leaves (student_id, date, reason) VALUES (1, 'tomorrow', 'sick')`)
	require.NoError(t, err)

	var status string
	require.NoError(t, database.QueryRowContext(ctx, `SELECT status FROM leaves WHERE id = 1`).Scan(&status))
	assert.Equal(t, "pending", status)

	_, err = database.ExecContext(ctx, `INSERT INTO leaves (student_id, date, reason, status) VALUES (1, 'x', 'y', 'rejected')`)
	assert.Error(t, err)
}

func TestSchema_ForeignKeysAreEnforced(t *testing.T) {
	database := testutil.NewDatabase(t, testutil.Config(t))

	_, err := database.ExecContext(context.Background(), `INSERT INTO grades (student_id, subject, score) VALUES (42, 'Math', 1)`)
	assert.Error(t, err)
}
