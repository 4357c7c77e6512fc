package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Champion struct {
	Id          uuid.UUID                     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   string                        `gorm:"type:varchar(64);not null;index"`
	Name        string                        `gorm:"type:varchar(255);not null"`
	ImageURL    string                        `gorm:"type:text"`
	Description string                        `gorm:"type:text"`
	Votes       datatypes.JSONSlice[string]   `gorm:"type:jsonb;not null;default:'[]'"`
	Extra       datatypes.JSONMap             `gorm:"type:jsonb"`
	CreatedAt   time.Time                     `gorm:"autoCreateTime"`
	CreatedBy   string                        `gorm:"type:varchar(128)"`
}

func (Champion) TableName() string {
	return "champions"
}
