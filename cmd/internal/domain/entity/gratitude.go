package entity

import "time"

type Gratitude struct {
	ID        int       `gorm:"primaryKey"`
	Content   string    `gorm:"size:250;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}
