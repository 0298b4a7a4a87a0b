package roster

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// ListFilter narrows FindAll. Zero values mean "no filter".
type ListFilter struct {
	ProfileID string
	ClientID  string
	ProjectID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

//go:generate mockgen -source=roster_repo.go -destination=mock/roster_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	BulkCreate(ctx context.Context, entries []RosterEntry) error
	FindAll(ctx context.Context, filter ListFilter) ([]RosterEntry, error)
	FindByID(ctx context.Context, id string) (*RosterEntry, error)
	Update(ctx context.Context, e *RosterEntry) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) BulkCreate(ctx context.Context, entries []RosterEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.conn(ctx).CreateInBatches(entries, 100).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]RosterEntry, error) {
	var entries []RosterEntry
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
	err := q.Find(&entries).Error
	return entries, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*RosterEntry, error) {
	var e RosterEntry
	err := r.conn(ctx).Preload("Profile").First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *RosterEntry) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&RosterEntry{}, "id = ?", id).Error
}
