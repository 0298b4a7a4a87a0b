package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusOnHold    = "on_hold"
)

type Project struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"column:name;type:varchar(120);not null"`
	ClientID    uuid.UUID      `gorm:"column:client_id;type:uuid;not null;index"`
	Client      *ClientRef     `gorm:"foreignKey:ClientID;references:ID"`
	Description *string        `gorm:"column:description;type:text"`
	Status      string         `gorm:"column:status;type:varchar(20);not null;default:'active';index"`
	StartDate   *time.Time     `gorm:"column:start_date;type:date"`
	EndDate     *time.Time     `gorm:"column:end_date;type:date"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Project) TableName() string {
	return "projects"
}

// ClientRef is a narrow projection of the clients table for eager loading.
type ClientRef struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"column:name"`
	Company *string   `gorm:"column:company"`
}

func (ClientRef) TableName() string {
	return "clients"
}
