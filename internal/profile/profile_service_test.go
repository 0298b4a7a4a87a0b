package profile

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	profileerrors "staffops/internal/profile/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn   func(tx *sql.Tx) Repository
	createFn   func(ctx context.Context, p *Profile) error
	findAllFn  func(ctx context.Context, activeOnly bool) ([]Profile, error)
	findByIDFn func(ctx context.Context, id string) (*Profile, error)
	listFn     func(ctx context.Context, q ListQuery) ([]Profile, int64, error)
	updateFn   func(ctx context.Context, p *Profile) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, p *Profile) error {
	return f.createFn(ctx, p)
}
func (f *fakeRepo) FindAll(ctx context.Context, activeOnly bool) ([]Profile, error) {
	return f.findAllFn(ctx, activeOnly)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Profile, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) List(ctx context.Context, q ListQuery) ([]Profile, int64, error) {
	return f.listFn(ctx, q)
}
func (f *fakeRepo) Update(ctx context.Context, p *Profile) error { return f.updateFn(ctx, p) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error  { return f.deleteFn(ctx, id) }

func sampleProfiles(n int) []Profile {
	profiles := make([]Profile, n)
	for i := range profiles {
		profiles[i] = Profile{
			ID:         uuid.New(),
			FullName:   "Employee",
			Email:      "employee@example.com",
			Role:       "employee",
			HourlyRate: 20,
			IsActive:   true,
			CreatedAt:  time.Now().UTC(),
		}
	}
	return profiles
}

func TestService_Create_LowercasesEmail(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var saved Profile
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, p *Profile) error { saved = *p; return nil }

	svc := NewService(db, repo)

	_, err := svc.Create(context.Background(), CreateProfileRequest{
		FullName:   "Alice Doe",
		Email:      "Alice.Doe@Example.COM",
		Role:       "employee",
		HourlyRate: 25,
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice.doe@example.com", saved.Email)
	assert.True(t, saved.IsActive)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Profile, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
}

func TestService_Paginate_DefaultsAndOffsets(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var gotQuery ListQuery
	repo := &fakeRepo{}
	repo.listFn = func(ctx context.Context, q ListQuery) ([]Profile, int64, error) {
		gotQuery = q
		return sampleProfiles(10), 35, nil
	}

	svc := NewService(db, repo)

	rows, meta, err := svc.Paginate(context.Background(), OperationRequest{
		Operation: "paginate",
		Page:      3,
		PageSize:  10,
		SortBy:    "full_name",
		SortOrder: "ASC",
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, 20, gotQuery.Offset)
	assert.Equal(t, 10, gotQuery.Limit)
	assert.Equal(t, "full_name", gotQuery.SortBy)
	assert.Equal(t, "asc", gotQuery.SortOrder)
	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.TotalPages)
	assert.Equal(t, 3, meta.Page)
}

func TestService_Paginate_RejectsUnknownSortColumn(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.listFn = func(ctx context.Context, q ListQuery) ([]Profile, int64, error) {
		t.Fatal("a rejected sort column must not reach the store")
		return nil, 0, nil
	}

	svc := NewService(db, repo)

	_, _, err := svc.Paginate(context.Background(), OperationRequest{
		Operation: "paginate",
		SortBy:    "full_name; DROP TABLE profiles",
	})
	assert.ErrorIs(t, err, profileerrors.ErrInvalidSortColumn)
}

func TestService_Export_CSV(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.listFn = func(ctx context.Context, q ListQuery) ([]Profile, int64, error) {
		// export must ignore pagination
		assert.Equal(t, 0, q.Offset)
		assert.Equal(t, 0, q.Limit)
		return sampleProfiles(3), 3, nil
	}

	svc := NewService(db, repo)

	payload, err := svc.Export(context.Background(), OperationRequest{
		Operation: "export",
		Format:    "csv",
		Page:      5,
		PageSize:  10,
	})
	assert.NoError(t, err)
	assert.Equal(t, "text/csv", payload.ContentType)
	assert.True(t, strings.HasPrefix(payload.Filename, "profiles-"))
	assert.True(t, strings.HasSuffix(payload.Filename, ".csv"))

	records, err := csv.NewReader(strings.NewReader(string(payload.Body))).ReadAll()
	assert.NoError(t, err)
	// header + 3 rows
	assert.Len(t, records, 4)
	assert.Equal(t, "Full Name", records[0][1])
}

func TestService_Export_JSONDefault(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.listFn = func(ctx context.Context, q ListQuery) ([]Profile, int64, error) {
		return sampleProfiles(2), 2, nil
	}

	svc := NewService(db, repo)

	payload, err := svc.Export(context.Background(), OperationRequest{
		Operation: "export",
		Format:    "json",
	})
	assert.NoError(t, err)
	assert.Equal(t, "application/json", payload.ContentType)

	var rows []ProfileResponse
	assert.NoError(t, json.Unmarshal(payload.Body, &rows))
	assert.Len(t, rows, 2)
}

func TestService_Export_XLSX(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.listFn = func(ctx context.Context, q ListQuery) ([]Profile, int64, error) {
		return sampleProfiles(1), 1, nil
	}

	svc := NewService(db, repo)

	payload, err := svc.Export(context.Background(), OperationRequest{
		Operation: "export",
		Format:    "xlsx",
	})
	assert.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload.ContentType)
	assert.NotEmpty(t, payload.Body)
	// xlsx files are zip archives
	assert.Equal(t, "PK", string(payload.Body[:2]))
}
