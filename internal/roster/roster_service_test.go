package roster

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	rostererrors "staffops/internal/roster/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepo struct {
	withTxFn     func(tx *sql.Tx) Repository
	bulkCreateFn func(ctx context.Context, entries []RosterEntry) error
	findAllFn    func(ctx context.Context, filter ListFilter) ([]RosterEntry, error)
	findByIDFn   func(ctx context.Context, id string) (*RosterEntry, error)
	updateFn     func(ctx context.Context, e *RosterEntry) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) BulkCreate(ctx context.Context, entries []RosterEntry) error {
	return f.bulkCreateFn(ctx, entries)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]RosterEntry, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*RosterEntry, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, e *RosterEntry) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error      { return f.deleteFn(ctx, id) }

func generateRequest(profiles int) GenerateRosterRequest {
	ids := make([]string, profiles)
	for i := range ids {
		ids[i] = uuid.New().String()
	}
	return GenerateRosterRequest{
		ProfileIDs: ids,
		ClientID:   uuid.New().String(),
		ProjectID:  uuid.New().String(),
		StartDate:  "2025-03-03",
		EndDate:    "2025-03-07",
		StartTime:  "09:00",
		EndTime:    "17:00",
	}
}

func TestService_Generate_OneEntryPerProfilePerDay(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var inserted []RosterEntry
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.bulkCreateFn = func(ctx context.Context, entries []RosterEntry) error {
		inserted = entries
		return nil
	}

	svc := NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(context.Background(), generateRequest(3))
	assert.NoError(t, err)

	// 3 profiles x 5 days
	assert.Equal(t, 15, resp.Generated)
	assert.Len(t, inserted, 15)
	perProfile := map[string]int{}
	for _, e := range inserted {
		assert.Equal(t, 8.0, e.TotalHours)
		assert.Equal(t, StatusPending, e.Status)
		assert.True(t, e.IsEditable)
		assert.False(t, e.IsLocked)
		perProfile[e.ProfileID.String()]++
	}
	for _, n := range perProfile {
		assert.Equal(t, 5, n)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_EmptyProfileSetIsNoOp(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.bulkCreateFn = func(ctx context.Context, entries []RosterEntry) error {
		t.Fatal("store must not be touched for an empty profile set")
		return nil
	}

	svc := NewService(db, repo, zap.NewNop())

	req := generateRequest(0)
	resp, err := svc.Generate(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Generated)
	assert.Empty(t, resp.Entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_EndDateDefaultsToStart(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var inserted []RosterEntry
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.bulkCreateFn = func(ctx context.Context, entries []RosterEntry) error {
		inserted = entries
		return nil
	}

	svc := NewService(db, repo, zap.NewNop())

	req := generateRequest(2)
	req.EndDate = ""

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Generated)
	for _, e := range inserted {
		assert.Equal(t, "2025-03-03", e.Date.Format("2006-01-02"))
	}
}

func TestService_Generate_NegativeShiftClampsToZero(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.bulkCreateFn = func(ctx context.Context, entries []RosterEntry) error { return nil }

	svc := NewService(db, repo, zap.NewNop())

	req := generateRequest(1)
	req.EndDate = req.StartDate
	req.StartTime = "17:00"
	req.EndTime = "09:00"

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, resp.Entries[0].TotalHours)
}

func TestService_Generate_InvalidInputs(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, zap.NewNop())
	ctx := context.Background()

	badDate := generateRequest(1)
	badDate.StartDate = "03/03/2025"
	_, err := svc.Generate(ctx, badDate)
	assert.ErrorIs(t, err, rostererrors.ErrInvalidDateFormat)

	badRange := generateRequest(1)
	badRange.EndDate = "2025-03-01"
	_, err = svc.Generate(ctx, badRange)
	assert.ErrorIs(t, err, rostererrors.ErrInvalidDateRange)

	badTime := generateRequest(1)
	badTime.StartTime = "9am"
	_, err = svc.Generate(ctx, badTime)
	assert.ErrorIs(t, err, rostererrors.ErrInvalidTimeFormat)
}

func TestService_Update_LockedEntryIsRejectedBeforeWrite(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	locked := &RosterEntry{
		ID:         uuid.New(),
		StartTime:  "09:00",
		EndTime:    "17:00",
		TotalHours: 8,
		Status:     StatusConfirmed,
		IsLocked:   true,
		IsEditable: false,
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*RosterEntry, error) { return locked, nil }
	repo.updateFn = func(ctx context.Context, e *RosterEntry) error {
		t.Fatal("locked entry must not reach the store")
		return nil
	}

	svc := NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), locked.ID.String(), UpdateRosterRequest{
		Date:      "2025-03-03",
		StartTime: "10:00",
		EndTime:   "18:00",
		Status:    StatusConfirmed,
	})
	assert.ErrorIs(t, err, rostererrors.ErrRosterLocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_RecalculatesHours(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	entry := &RosterEntry{
		ID:         uuid.New(),
		StartTime:  "09:00",
		EndTime:    "17:00",
		TotalHours: 8,
		Status:     StatusPending,
		IsEditable: true,
	}

	var saved RosterEntry
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*RosterEntry, error) { return entry, nil }
	repo.updateFn = func(ctx context.Context, e *RosterEntry) error { saved = *e; return nil }

	svc := NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), entry.ID.String(), UpdateRosterRequest{
		Date:      "2025-03-04",
		StartTime: "08:00",
		EndTime:   "14:30",
		Status:    StatusConfirmed,
	})
	assert.NoError(t, err)
	assert.Equal(t, 6.5, saved.TotalHours)
	assert.Equal(t, 6.5, resp.TotalHours)
	assert.Equal(t, StatusConfirmed, resp.Status)
}

func TestService_Delete_LockedEntryIsRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*RosterEntry, error) {
		return &RosterEntry{ID: uuid.New(), IsLocked: true, IsEditable: false}, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error {
		t.Fatal("locked entry must not reach the store")
		return nil
	}

	svc := NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, rostererrors.ErrRosterLocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
		wantErr    error
	}{
		{"09:00", "17:00", 8, nil},
		{"00:00", "23:59", 23.983333333333334, nil},
		{"12:00", "12:00", 0, nil},
		{"17:00", "09:00", 0, nil},
		{"nine", "17:00", 0, rostererrors.ErrInvalidTimeFormat},
	}
	for _, tc := range cases {
		got, err := shiftHours(tc.start, tc.end)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr)
			continue
		}
		assert.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9)
	}
}

func TestMapStoreError_PassThrough(t *testing.T) {
	boom := errors.New("boom")
	assert.Equal(t, boom, mapStoreError(boom))
}
