package payroll

import (
	"context"
	"errors"
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

func TestRepository_WithTx_StatementsRunOnTransaction(t *testing.T) {
	repo, poolMock := newRepoWithPool(t)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	payrollID := uuid.New().String()
	txMock.ExpectBegin()
	txMock.ExpectExec(`DELETE FROM "payroll_working_hour_links"`).
		WithArgs(payrollID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)
	assert.NoError(t, repo.WithTx(tx).DeleteLinks(context.Background(), payrollID))
	assert.NoError(t, tx.Commit())

	assert.NoError(t, txMock.ExpectationsWereMet())
	// nothing may leak onto the shared pool once a transaction is bound
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestRepository_WithTx_RollbackDiscardsWrites(t *testing.T) {
	repo, poolMock := newRepoWithPool(t)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectQuery(`INSERT INTO "payroll_working_hour_links"`).
		WillReturnError(errors.New("insert failed"))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	qtx := repo.WithTx(tx)
	links := []PayrollWorkingHourLink{{
		ID:            uuid.New(),
		PayrollID:     uuid.New(),
		WorkingHourID: uuid.New(),
	}}
	assert.Error(t, qtx.CreateLinks(context.Background(), links))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
