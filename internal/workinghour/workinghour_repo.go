package workinghour

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	ProfileID string
	ClientID  string
	ProjectID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

//go:generate mockgen -source=workinghour_repo.go -destination=mock/workinghour_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, wh *WorkingHour) error
	FindAll(ctx context.Context, filter ListFilter) ([]WorkingHour, error)
	FindByID(ctx context.Context, id string) (*WorkingHour, error)
	Update(ctx context.Context, wh *WorkingHour) error
	Delete(ctx context.Context, id string) error

	// FindEligible returns approved entries in [from, to] that are not yet
	// linked to a payroll and whose date is not covered by a paid payroll
	// period for the same employee.
	FindEligible(ctx context.Context, profileID string, from, to time.Time) ([]WorkingHour, error)

	// LockRosterEntry freezes the schedule row an approved entry came from.
	LockRosterEntry(ctx context.Context, rosterEntryID string) error

	FindProfileRate(ctx context.Context, profileID string) (float64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn routes statements through the bound transaction when one is set, so
// writes issued inside a service transaction commit or roll back with it.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx != nil {
		db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
		db.Statement.ConnPool = r.tx
		return db
	}
	return r.db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, wh *WorkingHour) error {
	return r.conn(ctx).Create(wh).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]WorkingHour, error) {
	var hours []WorkingHour
	q := r.conn(ctx).
		Preload("Profile").
		Order("date ASC, start_time ASC")
	if filter.ProfileID != "" {
		q = q.Where("profile_id = ?", filter.ProfileID)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.ProjectID != "" {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", *filter.DateTo)
	}
	err := q.Find(&hours).Error
	return hours, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*WorkingHour, error) {
	var wh WorkingHour
	err := r.conn(ctx).Preload("Profile").First(&wh, "id = ?", id).Error
	return &wh, err
}

func (r *repository) Update(ctx context.Context, wh *WorkingHour) error {
	return r.conn(ctx).Save(wh).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&WorkingHour{}, "id = ?", id).Error
}

func (r *repository) FindEligible(ctx context.Context, profileID string, from, to time.Time) ([]WorkingHour, error) {
	var hours []WorkingHour
	err := r.conn(ctx).
		Preload("Profile").
		Where("profile_id = ?", profileID).
		Where("status = ?", StatusApproved).
		Where("date BETWEEN ? AND ?", from, to).
		Where(`NOT EXISTS (
			SELECT 1 FROM payroll_working_hour_links l
			WHERE l.working_hour_id = working_hours.id
		)`).
		Where(`NOT EXISTS (
			SELECT 1 FROM payrolls p
			WHERE p.profile_id = working_hours.profile_id
			  AND p.status = 'paid'
			  AND p.deleted_at IS NULL
			  AND working_hours.date BETWEEN p.pay_period_start AND p.pay_period_end
		)`).
		Order("date ASC").
		Find(&hours).Error
	return hours, err
}

func (r *repository) LockRosterEntry(ctx context.Context, rosterEntryID string) error {
	return r.conn(ctx).
		Table("roster_entries").
		Where("id = ?", rosterEntryID).
		Updates(map[string]any{"is_locked": true, "is_editable": false}).Error
}

func (r *repository) FindProfileRate(ctx context.Context, profileID string) (float64, error) {
	var ref ProfileRef
	err := r.conn(ctx).First(&ref, "id = ?", profileID).Error
	return ref.HourlyRate, err
}
