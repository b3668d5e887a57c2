package models

import (
	"time"
)

type Show struct {
	ID        uint `gorm:"primaryKey"`
	ArtistID  uint `gorm:"not null;index"`
	Artist    Artist
	VenueID   uint `gorm:"not null;index"`
	Venue     Venue
	StartTime time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
