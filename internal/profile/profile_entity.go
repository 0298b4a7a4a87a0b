package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName       string         `gorm:"column:full_name;type:varchar(120);not null"`
	Email          string         `gorm:"column:email;type:varchar(120);not null;uniqueIndex:uq_profile_email"`
	Phone          *string        `gorm:"column:phone;type:varchar(30)"`
	Role           string         `gorm:"column:role;type:varchar(40);not null;default:'employee';index"`
	EmploymentType *string        `gorm:"column:employment_type;type:varchar(30)"`
	HourlyRate     float64        `gorm:"column:hourly_rate;type:numeric(10,2);not null;default:0"`
	Salary         *float64       `gorm:"column:salary;type:numeric(12,2)"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true;index"`
	StartDate      *time.Time     `gorm:"column:start_date;type:date"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Profile) TableName() string {
	return "profiles"
}
