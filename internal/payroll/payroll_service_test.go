package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	payrollerrors "staffops/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newManualService(db *sql.DB, repo Repository) Service {
	return NewService(db, repo, nil, nil, nil, DefaultDeductionPolicy(), zap.NewNop())
}

func TestService_Create_RejectsOverlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return true, nil
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error {
		t.Fatal("overlapping payroll must not be written")
		return nil
	}

	svc := newManualService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), "", CreatePayrollRequest{
		ProfileID:      uuid.New().String(),
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrOverlappingPeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DerivesMoneyFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Payroll
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return false, nil
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error { saved = *p; return nil }

	svc := newManualService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.New().String(), CreatePayrollRequest{
		ProfileID:      uuid.New().String(),
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
		TotalHours:     10,
		HourlyRate:     20,
		Deductions:     25,
	})
	assert.NoError(t, err)
	assert.Equal(t, 200.0, saved.GrossPay)
	assert.Equal(t, 175.0, saved.NetPay)
	assert.Equal(t, StatusPending, resp.Status)
	assert.NotNil(t, saved.CreatedBy)
}

func TestService_Update_RecomputesAndStampsPaidAt(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := &Payroll{
		ID:         uuid.New(),
		ProfileID:  uuid.New(),
		TotalHours: 10,
		HourlyRate: 20,
		Deductions: 25,
		Status:     StatusPending,
	}

	var saved Payroll
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Payroll, error) { return existing, nil }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		assert.NotNil(t, excludeID)
		return false, nil
	}
	repo.updateFn = func(ctx context.Context, p *Payroll) error { saved = *p; return nil }

	svc := newManualService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdatePayrollRequest{
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
		TotalHours:     10,
		HourlyRate:     25,
		Deductions:     25,
		Status:         StatusPaid,
	})
	assert.NoError(t, err)
	assert.Equal(t, 250.0, saved.GrossPay)
	assert.Equal(t, 225.0, saved.NetPay)
	assert.NotNil(t, saved.PaidAt)
	assert.Equal(t, 225.0, resp.NetPay)
}

func TestService_Update_InvalidPeriod(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := newManualService(db, &fakeRepo{})

	_, err := svc.Update(context.Background(), uuid.New().String(), UpdatePayrollRequest{
		PayPeriodStart: "2024-01-07",
		PayPeriodEnd:   "2024-01-01",
		Status:         StatusPending,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
}

func TestService_Delete_OnlyPending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Payroll, error) {
		return &Payroll{ID: uuid.New(), Status: StatusPaid}, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error {
		t.Fatal("paid payroll must not be deleted")
		return nil
	}
	repo.deleteLinksFn = func(ctx context.Context, payrollID string) error {
		t.Fatal("paid payroll links must not be deleted")
		return nil
	}

	svc := newManualService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, payrollerrors.ErrNotPending)
}

func TestService_Delete_RemovesLinksWithPayroll(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	var linksDeleted, payrollDeleted bool
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, lookupID string) (*Payroll, error) {
		return &Payroll{ID: id, Status: StatusPending}, nil
	}
	repo.deleteLinksFn = func(ctx context.Context, payrollID string) error {
		linksDeleted = true
		return nil
	}
	repo.deleteFn = func(ctx context.Context, lookupID string) error {
		payrollDeleted = true
		return nil
	}

	svc := newManualService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), id.String())
	assert.NoError(t, err)
	assert.True(t, linksDeleted)
	assert.True(t, payrollDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_ManualGrossPayWins(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := &Payroll{
		ID:         uuid.New(),
		ProfileID:  uuid.New(),
		TotalHours: 10,
		HourlyRate: 20,
		Status:     StatusPending,
	}

	var saved Payroll
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Payroll, error) { return existing, nil }
	repo.hasOverlapFn = func(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
		return false, nil
	}
	repo.updateFn = func(ctx context.Context, p *Payroll) error { saved = *p; return nil }

	svc := newManualService(db, repo)

	gross := 300.0
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdatePayrollRequest{
		PayPeriodStart: "2024-01-01",
		PayPeriodEnd:   "2024-01-07",
		TotalHours:     10,
		HourlyRate:     20,
		GrossPay:       &gross,
		Deductions:     25,
		Status:         StatusPending,
	})
	assert.NoError(t, err)
	assert.Equal(t, 300.0, saved.GrossPay)
	assert.Equal(t, 275.0, saved.NetPay)
	assert.Equal(t, 275.0, resp.NetPay)
}
