package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	ProfileID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context, filter ListFilter) ([]Payroll, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	Update(ctx context.Context, p *Payroll) error
	Delete(ctx context.Context, id string) error

	// HasOverlappingPeriod reports whether [start, end] intersects any existing
	// payroll period for the employee. Closed intervals: touching boundaries
	// overlap. excludeID skips the payroll being edited.
	HasOverlappingPeriod(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error)

	CreateLinks(ctx context.Context, links []PayrollWorkingHourLink) error
	FindLinks(ctx context.Context, payrollID string) ([]PayrollWorkingHourLink, error)
	DeleteLinks(ctx context.Context, payrollID string) error
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Payroll, error) {
	var payrolls []Payroll
	q := r.conn(ctx).
		Preload("Profile").
		Order("pay_period_start DESC")
	if filter.ProfileID != "" {
		q = q.Where("profile_id = ?", filter.ProfileID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("pay_period_end >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("pay_period_start <= ?", *filter.DateTo)
	}
	err := q.Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.conn(ctx).Preload("Profile").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Payroll{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, profileID string, start, end time.Time, excludeID *string) (bool, error) {
	var count int64
	q := r.conn(ctx).
		Model(&Payroll{}).
		Where("profile_id = ?", profileID).
		Where("pay_period_start <= ? AND pay_period_end >= ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateLinks(ctx context.Context, links []PayrollWorkingHourLink) error {
	if len(links) == 0 {
		return nil
	}
	return r.conn(ctx).CreateInBatches(links, 100).Error
}

func (r *repository) FindLinks(ctx context.Context, payrollID string) ([]PayrollWorkingHourLink, error) {
	var links []PayrollWorkingHourLink
	err := r.conn(ctx).
		Where("payroll_id = ?", payrollID).
		Find(&links).Error
	return links, err
}

func (r *repository) DeleteLinks(ctx context.Context, payrollID string) error {
	return r.conn(ctx).
		Delete(&PayrollWorkingHourLink{}, "payroll_id = ?", payrollID).Error
}
