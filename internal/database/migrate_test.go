package database

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tableDDL returns the CREATE TABLE statement for the named table.
func tableDDL(t *testing.T, table string) string {
	t.Helper()

	for _, stmt := range migrations {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			return stmt
		}
	}
	t.Fatalf("no migration creates table %s", table)
	return ""
}

func TestMigrate(t *testing.T) {
	t.Run("Applies All Statements In Order", func(t *testing.T) {
		db, mock := newMockDatabase(t)

		for _, stmt := range migrations {
			mock.ExpectExec(regexp.QuoteMeta(stmt)).
				WillReturnResult(sqlmock.NewResult(0, 0))
		}

		err := Migrate(db)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Stops On First Failure", func(t *testing.T) {
		db, mock := newMockDatabase(t)

		mock.ExpectExec(regexp.QuoteMeta(migrations[0])).
			WillReturnError(errors.New("permission denied"))

		err := Migrate(db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to apply migration")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeletingHofNullsDependentsNotRows(t *testing.T) {
	ddl := tableDDL(t, "mumineen")

	// Deleting a head of family must null dependents' hof_its_id and
	// must never cascade into deleting the dependents themselves.
	assert.Contains(t, ddl, "hof_its_id TEXT REFERENCES mumineen(its_id) ON DELETE SET NULL")
	assert.NotContains(t, ddl, "hof_its_id TEXT REFERENCES mumineen(its_id) ON DELETE CASCADE")
}

func TestDeletingMiqaatCascadesToOwnedRows(t *testing.T) {
	for _, table := range []string{
		"miqaat_events",
		"miqaat_registrations",
		"arrival_scans",
		"accommodations",
		"waaz_center_preferences",
	} {
		t.Run(table, func(t *testing.T) {
			ddl := tableDDL(t, table)
			assert.Contains(t, ddl, "REFERENCES miqaats(id) ON DELETE CASCADE")
		})
	}
}
