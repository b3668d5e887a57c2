package handlers

import (
	"time"

	"github.com/rakhadjo/bandstand/internal/helpers"
	"github.com/rakhadjo/bandstand/internal/models"
	"gorm.io/gorm"
)

// View-models handed to the templates. Shows are classified at request time:
// a show is upcoming iff its start time is strictly later than now, so a show
// starting exactly now counts as past.

type VenueSummary struct {
	ID               uint
	Name             string
	NumUpcomingShows int
}

type VenueArea struct {
	City   string
	State  string
	Venues []VenueSummary
}

type SearchResults struct {
	Count int
	Data  []VenueSummary
}

type ShowEntry struct {
	ArtistID        uint
	ArtistName      string
	ArtistImageLink string
	VenueID         uint
	VenueName       string
	StartTime       string
}

type VenuePage struct {
	ID                 uint
	Name               string
	Address            string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

type ArtistPage struct {
	ID                 uint
	Name               string
	Genres             []string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

type ShowListing struct {
	VenueID    uint
	VenueName  string
	ArtistID   uint
	ArtistName string
	StartTime  string
}

// groupVenuesByArea folds venues into one area per (state, city) pair.
// The input must already be ordered by (state, city); output order follows it.
func groupVenuesByArea(venues []models.Venue, upcoming map[uint]int) []VenueArea {
	var areas []VenueArea
	for _, venue := range venues {
		summary := VenueSummary{
			ID:               venue.ID,
			Name:             venue.Name,
			NumUpcomingShows: upcoming[venue.ID],
		}

		n := len(areas)
		if n > 0 && areas[n-1].State == venue.State && areas[n-1].City == venue.City {
			areas[n-1].Venues = append(areas[n-1].Venues, summary)
			continue
		}
		areas = append(areas, VenueArea{
			City:   venue.City,
			State:  venue.State,
			Venues: []VenueSummary{summary},
		})
	}
	return areas
}

// venueUpcomingCounts returns, per venue id, how many of its shows start
// strictly after now. Venues with no upcoming shows are absent from the map.
func venueUpcomingCounts(db *gorm.DB, now time.Time) (map[uint]int, error) {
	var rows []struct {
		VenueID uint
		Total   int
	}
	err := db.Model(&models.Show{}).
		Select("venue_id, count(*) as total").
		Where("start_time > ?", now).
		Group("venue_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.VenueID] = row.Total
	}
	return counts, nil
}

// partitionShows splits shows around now. Shows starting after now are
// upcoming; everything else, including a show starting exactly now, is past.
func partitionShows(shows []models.Show, now time.Time) (past, upcoming []ShowEntry) {
	past = []ShowEntry{}
	upcoming = []ShowEntry{}
	for _, show := range shows {
		entry := ShowEntry{
			ArtistID:        show.ArtistID,
			ArtistName:      show.Artist.Name,
			ArtistImageLink: show.Artist.ImageLink,
			VenueID:         show.VenueID,
			VenueName:       show.Venue.Name,
			StartTime:       helpers.FormatShowTime(show.StartTime),
		}
		if show.StartTime.After(now) {
			upcoming = append(upcoming, entry)
		} else {
			past = append(past, entry)
		}
	}
	return past, upcoming
}

func buildVenuePage(venue models.Venue, shows []models.Show, now time.Time) VenuePage {
	past, upcoming := partitionShows(shows, now)
	return VenuePage{
		ID:                 venue.ID,
		Name:               venue.Name,
		Address:            venue.Address,
		City:               venue.City,
		State:              venue.State,
		Phone:              venue.Phone,
		Website:            venue.WebsiteLink,
		FacebookLink:       venue.FacebookLink,
		SeekingTalent:      venue.SeekingTalent,
		SeekingDescription: venue.SeekingDescription,
		ImageLink:          venue.ImageLink,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

func buildArtistPage(artist models.Artist, shows []models.Show, now time.Time) ArtistPage {
	past, upcoming := partitionShows(shows, now)
	return ArtistPage{
		ID:                 artist.ID,
		Name:               artist.Name,
		Genres:             artist.Genres,
		City:               artist.City,
		State:              artist.State,
		Phone:              artist.Phone,
		Website:            artist.WebsiteLink,
		FacebookLink:       artist.FacebookLink,
		SeekingVenue:       artist.SeekingVenue,
		SeekingDescription: artist.SeekingDescription,
		ImageLink:          artist.ImageLink,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}
