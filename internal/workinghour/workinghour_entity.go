package workinghour

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusPaid     = "paid"
)

// WorkingHour is the recorded (as opposed to scheduled) time for one employee
// on one day. Entries usually originate from a roster entry but can be logged
// free-standing, in which case RosterEntryID is nil.
type WorkingHour struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileID     uuid.UUID      `gorm:"column:profile_id;type:uuid;not null;index:idx_wh_profile_date"`
	ClientID      uuid.UUID      `gorm:"column:client_id;type:uuid;not null;index"`
	ProjectID     uuid.UUID      `gorm:"column:project_id;type:uuid;not null;index"`
	RosterEntryID *uuid.UUID     `gorm:"column:roster_entry_id;type:uuid;index"`
	Date          time.Time      `gorm:"column:date;type:date;not null;index:idx_wh_profile_date"`
	StartTime     string         `gorm:"column:start_time;type:varchar(5);not null"`
	EndTime       string         `gorm:"column:end_time;type:varchar(5);not null"`
	TotalHours    float64        `gorm:"column:total_hours;type:numeric(6,2);not null;default:0"`
	ActualHours   float64        `gorm:"column:actual_hours;type:numeric(6,2);not null;default:0"`
	OvertimeHours float64        `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`
	HourlyRate    float64        `gorm:"column:hourly_rate;type:numeric(10,2);not null;default:0"`
	PayableAmount float64        `gorm:"column:payable_amount;type:numeric(12,2);not null;default:0"`
	SignInTime    *time.Time     `gorm:"column:sign_in_time"`
	SignOutTime   *time.Time     `gorm:"column:sign_out_time"`
	Status        string         `gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	Notes         *string        `gorm:"column:notes;type:text"`
	IsLocked      bool           `gorm:"column:is_locked;not null;default:false"`
	IsEditable    bool           `gorm:"column:is_editable;not null;default:true"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Profile       *ProfileRef    `gorm:"foreignKey:ProfileID;references:ID"`
}

func (WorkingHour) TableName() string {
	return "working_hours"
}

type ProfileRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string    `gorm:"column:full_name"`
	HourlyRate float64   `gorm:"column:hourly_rate"`
}

func (ProfileRef) TableName() string {
	return "profiles"
}
