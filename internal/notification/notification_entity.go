package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"

	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type Notification struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipientProfileID uuid.UUID  `gorm:"column:recipient_profile_id;type:uuid;not null;index"`
	Title              string     `gorm:"column:title;type:varchar(200);not null"`
	Message            string     `gorm:"column:message;type:text;not null"`
	Type               string     `gorm:"column:type;type:varchar(20);not null;default:'info'"`
	ActionType         *string    `gorm:"column:action_type;type:varchar(50)"`
	RelatedID          *uuid.UUID `gorm:"column:related_id;type:uuid"`
	Priority           string     `gorm:"column:priority;type:varchar(10);not null;default:'normal'"`
	IsRead             bool       `gorm:"column:is_read;not null;default:false;index"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
