package profile

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// ListQuery is the normalized paginate/export query. SortBy must already be
// validated against allowed columns before it reaches the repository.
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Offset    int
	Limit     int // 0 means no limit (export)
}

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Profile) error
	FindAll(ctx context.Context, activeOnly bool) ([]Profile, error)
	FindByID(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context, q ListQuery) ([]Profile, int64, error)
	Update(ctx context.Context, p *Profile) error
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

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]Profile, error) {
	var profiles []Profile
	q := r.conn(ctx).Order("full_name ASC")
	if activeOnly {
		q = q.Where("is_active = true")
	}
	err := q.Find(&profiles).Error
	return profiles, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]Profile, int64, error) {
	base := r.conn(ctx).Model(&Profile{})

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(
			"full_name ILIKE ? OR email ILIKE ? OR role ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	base = base.Order(fmt.Sprintf("%s %s", q.SortBy, q.SortOrder))
	if q.Limit > 0 {
		base = base.Offset(q.Offset).Limit(q.Limit)
	}

	var profiles []Profile
	if err := base.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Profile{}, "id = ?", id).Error
}
