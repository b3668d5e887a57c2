package models

import (
	"time"
)

type Artist struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"not null"`
	State              string `gorm:"not null"`
	Phone              string
	Genres             GenreList `gorm:"type:text"`
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	SeekingVenue       bool `gorm:"default:false"`
	SeekingDescription string
	Shows              []Show
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
