package models

import "time"

type Customer struct {
	ID            uint       `gorm:"primaryKey"`
	Name          string     `gorm:"size:100;not null"`
	PhoneNumber   string     `gorm:"size:20;uniqueIndex;not null"` // natural key, upserts are keyed on it
	Email         string     `gorm:"size:100"`
	DOB           *time.Time // date of birth
	Address       string     `gorm:"size:255"`
	MaritalStatus string     `gorm:"size:20"`
	DOM           *time.Time // date of marriage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
