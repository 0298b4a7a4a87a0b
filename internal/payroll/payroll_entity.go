package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"
)

// Payroll is one employee's computed pay-period summary. HourlyRate is the
// simple mean across the consumed working-hour records, not hour-weighted.
type Payroll struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileID       uuid.UUID      `gorm:"column:profile_id;type:uuid;not null;index:idx_payroll_profile_period"`
	PayPeriodStart  time.Time      `gorm:"column:pay_period_start;type:date;not null;index:idx_payroll_profile_period"`
	PayPeriodEnd    time.Time      `gorm:"column:pay_period_end;type:date;not null"`
	TotalHours      float64        `gorm:"column:total_hours;type:numeric(8,2);not null;default:0"`
	OvertimeHours   float64        `gorm:"column:overtime_hours;type:numeric(8,2);not null;default:0"`
	HourlyRate      float64        `gorm:"column:hourly_rate;type:numeric(10,2);not null;default:0"`
	GrossPay        float64        `gorm:"column:gross_pay;type:numeric(12,2);not null;default:0"`
	OvertimePay     float64        `gorm:"column:overtime_pay;type:numeric(12,2);not null;default:0"`
	Bonus           float64        `gorm:"column:bonus;type:numeric(12,2);not null;default:0"`
	Tax             float64        `gorm:"column:tax;type:numeric(12,2);not null;default:0"`
	Superannuation  float64        `gorm:"column:superannuation;type:numeric(12,2);not null;default:0"`
	OtherDeductions float64        `gorm:"column:other_deductions;type:numeric(12,2);not null;default:0"`
	Deductions      float64        `gorm:"column:deductions;type:numeric(12,2);not null;default:0"`
	NetPay          float64        `gorm:"column:net_pay;type:numeric(12,2);not null;default:0"`
	Status          string         `gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	BankAccountID   *uuid.UUID     `gorm:"column:bank_account_id;type:uuid"`
	PaidAt          *time.Time     `gorm:"column:paid_at"`
	CreatedBy       *uuid.UUID     `gorm:"column:created_by;type:uuid"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Profile         *ProfileRef    `gorm:"foreignKey:ProfileID;references:ID"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

// PayrollWorkingHourLink records that a payroll paid out a specific working
// hour. Its existence is the signal that the hour is consumed; links are
// created in the same transaction as their payroll and never edited.
type PayrollWorkingHourLink struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID     uuid.UUID `gorm:"column:payroll_id;type:uuid;not null;index"`
	WorkingHourID uuid.UUID `gorm:"column:working_hour_id;type:uuid;not null;uniqueIndex"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (PayrollWorkingHourLink) TableName() string {
	return "payroll_working_hour_links"
}

type ProfileRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (ProfileRef) TableName() string {
	return "profiles"
}
