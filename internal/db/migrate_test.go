package db

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bagdasarian/team-registration/internal/db/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"000002_second.up.sql":  {Data: []byte("CREATE TABLE b (id INT)")},
		"000001_first.up.sql":   {Data: []byte("CREATE TABLE a (id INT)")},
		"000001_first.down.sql": {Data: []byte("DROP TABLE a")},
		"README.md":             {Data: []byte("docs")},
	}
}

func TestApplyMigrations(t *testing.T) {
	t.Run("новые миграции выполняются по порядку и записываются", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(migrationLockID).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery("SELECT EXISTS").WithArgs("000001_first.up.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT)")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("000001_first.up.sql").WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery("SELECT EXISTS").WithArgs("000002_second.up.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT)")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("000002_second.up.sql").WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectCommit()

		err = ApplyMigrations(context.Background(), db, testFS())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("уже примененные миграции пропускаются", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("000001_first.up.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("000002_second.up.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectCommit()

		err = ApplyMigrations(context.Background(), db, testFS())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка DDL откатывает транзакцию", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnError(errors.New("permission denied for schema public"))
		mock.ExpectRollback()

		err = ApplyMigrations(context.Background(), db, testFS())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := upMigrations(migrations.FS)

	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "000001_init.up.sql", files[0])
}
