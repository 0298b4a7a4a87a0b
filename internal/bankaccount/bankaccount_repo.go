package bankaccount

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=bankaccount_repo.go -destination=mock/bankaccount_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *BankAccount) error
	FindAll(ctx context.Context) ([]BankAccount, error)
	FindCompanyAccounts(ctx context.Context) ([]BankAccount, error)
	FindByID(ctx context.Context, id string) (*BankAccount, error)
	ClearPrimary(ctx context.Context) error
	Update(ctx context.Context, b *BankAccount) error
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

func (r *repository) Create(ctx context.Context, b *BankAccount) error {
	return r.conn(ctx).Create(b).Error
}

func (r *repository) FindAll(ctx context.Context) ([]BankAccount, error) {
	var accounts []BankAccount
	err := r.conn(ctx).
		Order("is_primary DESC, bank_name ASC").
		Find(&accounts).Error
	return accounts, err
}

// FindCompanyAccounts returns accounts not tied to a profile, primary first.
// This is the candidate set for payroll disbursement.
func (r *repository) FindCompanyAccounts(ctx context.Context) ([]BankAccount, error) {
	var accounts []BankAccount
	err := r.conn(ctx).
		Where("profile_id IS NULL").
		Order("is_primary DESC, bank_name ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*BankAccount, error) {
	var b BankAccount
	err := r.conn(ctx).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) ClearPrimary(ctx context.Context) error {
	return r.conn(ctx).
		Model(&BankAccount{}).
		Where("is_primary = true").
		Update("is_primary", false).Error
}

func (r *repository) Update(ctx context.Context, b *BankAccount) error {
	return r.conn(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&BankAccount{}, "id = ?", id).Error
}
