package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByUserId struct {
	UserId string
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByAttemptStatus matches the terminal status recorded for an attempt.
type ByAttemptStatus struct {
	Status string
}

func (s ByAttemptStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type CreatedSince struct {
	Since time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}
