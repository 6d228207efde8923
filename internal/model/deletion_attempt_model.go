package model

import (
	"time"

	"github.com/google/uuid"
)

// DeletionAttempt records the outcome of one account deletion submit.
// It never stores the password.
type DeletionAttempt struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string    `gorm:"type:varchar(64);not null;index"`
	Status    string    `gorm:"type:varchar(20);not null"`
	ErrorType *string   `gorm:"type:varchar(32)"`
	CreatedAt time.Time `gorm:"default:now();not null;index"`
}

func (DeletionAttempt) TableName() string {
	return "deletion_attempts"
}
