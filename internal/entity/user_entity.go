package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash *string
	GoogleId     *string
	PictureURL   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
