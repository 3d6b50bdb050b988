package period_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-payroll/internal/period"
)

func newGormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

// Two separate mock connections: the repository is built over one, the
// transaction comes from the other. The update must land on the
// transaction's connection and the pool must stay untouched.
func TestRepositoryWithTx_ExecutesOnTransaction(t *testing.T) {
	gdb, poolMock := newGormOverMock(t)
	repo := period.NewRepository(gdb)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	p := &period.PayrollPeriod{
		ID:          uuid.New(),
		CompanyID:   uuid.New(),
		Name:        "January 2025",
		PeriodType:  period.PeriodTypeMonthly,
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		PayDate:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:      period.StatusProcessing,
	}

	txMock.ExpectExec(`UPDATE "payroll_periods"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), p))

	txMock.ExpectRollback()
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

// Rolling the transaction back leaves nothing behind: a repository bound to
// the pool and one bound to the rolled-back transaction are independent.
func TestRepositoryWithTx_DoesNotLeakIntoPool(t *testing.T) {
	gdb, poolMock := newGormOverMock(t)
	repo := period.NewRepository(gdb)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	qtx := repo.WithTx(tx)

	txMock.ExpectQuery(`SELECT .* FROM "payroll_periods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "status"}).
			AddRow(uuid.New().String(), uuid.New().String(), period.StatusDraft))

	_, err = qtx.FindByIDAndCompany(context.Background(), uuid.NewString(), uuid.NewString())
	assert.NoError(t, err)

	txMock.ExpectRollback()
	assert.NoError(t, tx.Rollback())

	// the original repository still points at the pool
	poolMock.ExpectQuery(`SELECT .* FROM "payroll_periods"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "status"}).
			AddRow(uuid.New().String(), uuid.New().String(), period.StatusDraft))

	_, err = repo.FindByIDAndCompany(context.Background(), uuid.NewString(), uuid.NewString())
	assert.NoError(t, err)

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
