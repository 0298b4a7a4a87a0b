package workinghour

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepoWithPool(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { poolDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 poolDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Discard})
	assert.NoError(t, err)

	return NewRepository(gormDB), poolMock
}

// Approving a working hour locks its roster entry in the caller's
// transaction; the update must run on that transaction, not the pool, so a
// failed approval leaves the entry untouched.
func TestRepository_WithTx_LockRosterEntryRunsOnTransaction(t *testing.T) {
	repo, poolMock := newRepoWithPool(t)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	entryID := uuid.New().String()
	txMock.ExpectBegin()
	txMock.ExpectExec(`UPDATE "roster_entries" SET`).
		WithArgs(false, true, entryID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)
	assert.NoError(t, repo.WithTx(tx).LockRosterEntry(context.Background(), entryID))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
