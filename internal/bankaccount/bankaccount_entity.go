package bankaccount

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankAccount with a nil ProfileID is a company disbursement account; those
// are the only ones the payroll wizard offers.
type BankAccount struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	BankName      string         `gorm:"column:bank_name;type:varchar(120);not null"`
	AccountName   string         `gorm:"column:account_name;type:varchar(120);not null"`
	AccountNumber string         `gorm:"column:account_number;type:varchar(40);not null;uniqueIndex:uq_bank_account_number"`
	BSB           *string        `gorm:"column:bsb;type:varchar(10)"`
	ProfileID     *uuid.UUID     `gorm:"column:profile_id;type:uuid;index"`
	IsPrimary     bool           `gorm:"column:is_primary;not null;default:false"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}
