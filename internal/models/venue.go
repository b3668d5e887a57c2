package models

import (
	"time"
)

type Venue struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"not null"`
	State              string `gorm:"not null"`
	Address            string `gorm:"not null"`
	Phone              string
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	SeekingTalent      bool `gorm:"default:false"`
	SeekingDescription string
	Shows              []Show
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
