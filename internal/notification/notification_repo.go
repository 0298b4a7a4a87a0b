package notification

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, profileID string, unreadOnly bool) ([]Notification, error)
	FindByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, profileID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.conn(ctx).Create(n).Error
}

func (r *repository) FindByRecipient(ctx context.Context, profileID string, unreadOnly bool) ([]Notification, error) {
	var notifications []Notification
	q := r.conn(ctx).
		Where("recipient_profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(100)
	if unreadOnly {
		q = q.Where("is_read = false")
	}
	err := q.Find(&notifications).Error
	return notifications, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.conn(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	return r.conn(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *repository) MarkAllRead(ctx context.Context, profileID string) (int64, error) {
	res := r.conn(ctx).
		Model(&Notification{}).
		Where("recipient_profile_id = ? AND is_read = false", profileID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
