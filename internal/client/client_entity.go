package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Client struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"column:name;type:varchar(120);not null"`
	Company   *string        `gorm:"column:company;type:varchar(120)"`
	Email     *string        `gorm:"column:email;type:varchar(120);uniqueIndex:uq_client_email"`
	Phone     *string        `gorm:"column:phone;type:varchar(30)"`
	Address   *string        `gorm:"column:address;type:text"`
	Status    string         `gorm:"column:status;type:varchar(20);not null;default:'active';index"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Client) TableName() string {
	return "clients"
}
