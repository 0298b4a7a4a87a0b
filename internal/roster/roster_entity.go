package roster

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// RosterEntry is one employee's scheduled shift on one calendar day. Bulk
// generation writes one entry per employee per day; multi-day shifts keep
// EndDate for display but hours are always per day.
type RosterEntry struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileID        uuid.UUID      `gorm:"column:profile_id;type:uuid;not null;index:idx_roster_profile_date"`
	ClientID         uuid.UUID      `gorm:"column:client_id;type:uuid;not null;index"`
	ProjectID        uuid.UUID      `gorm:"column:project_id;type:uuid;not null;index"`
	Date             time.Time      `gorm:"column:date;type:date;not null;index:idx_roster_profile_date"`
	EndDate          *time.Time     `gorm:"column:end_date;type:date"`
	StartTime        string         `gorm:"column:start_time;type:varchar(5);not null"`
	EndTime          string         `gorm:"column:end_time;type:varchar(5);not null"`
	TotalHours       float64        `gorm:"column:total_hours;type:numeric(6,2);not null;default:0"`
	Status           string         `gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	Name             *string        `gorm:"column:name;type:varchar(120)"`
	ExpectedProfiles int            `gorm:"column:expected_profiles;not null;default:1"`
	PerHourRate      *float64       `gorm:"column:per_hour_rate;type:numeric(10,2)"`
	Notes            *string        `gorm:"column:notes;type:text"`
	IsLocked         bool           `gorm:"column:is_locked;not null;default:false"`
	IsEditable       bool           `gorm:"column:is_editable;not null;default:true"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Profile          *ProfileRef    `gorm:"foreignKey:ProfileID;references:ID"`
}

func (RosterEntry) TableName() string {
	return "roster_entries"
}

type ProfileRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string    `gorm:"column:full_name"`
	HourlyRate float64   `gorm:"column:hourly_rate"`
}

func (ProfileRef) TableName() string {
	return "profiles"
}
