package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rakhadjo/bandstand/internal/helpers"
	"github.com/rakhadjo/bandstand/internal/middleware"
	"github.com/rakhadjo/bandstand/internal/models"
	"gorm.io/gorm"
)

type showInput struct {
	ArtistID  int
	VenueID   int
	StartTime time.Time
}

func parseShowInput(c *gin.Context) (showInput, error) {
	var input showInput
	var err error

	if input.ArtistID, err = helpers.StringToInt(c.PostForm("artist_id")); err != nil {
		return input, err
	}
	if input.VenueID, err = helpers.StringToInt(c.PostForm("venue_id")); err != nil {
		return input, err
	}
	if input.StartTime, err = helpers.ParseShowTime(c.PostForm("start_time")); err != nil {
		return input, err
	}
	return input, nil
}

func ListShows(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	var shows []models.Show
	err := db.Preload("Artist").Preload("Venue").
		Where("start_time > ?", time.Now()).
		Order("start_time").
		Find(&shows).Error
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	listings := make([]ShowListing, 0, len(shows))
	for _, show := range shows {
		listings = append(listings, ShowListing{
			VenueID:    show.VenueID,
			VenueName:  show.Venue.Name,
			ArtistID:   show.ArtistID,
			ArtistName: show.Artist.Name,
			StartTime:  helpers.FormatShowTime(show.StartTime),
		})
	}

	c.HTML(http.StatusOK, "shows.html", gin.H{
		"shows":   listings,
		"flashes": helpers.TakeFlashes(c),
	})
}

func CreateShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new_show.html", gin.H{
		"flashes": helpers.TakeFlashes(c),
	})
}

// CreateShow persists a show after checking that both referenced rows exist.
// A parse failure and a persistence failure surface the same notification.
func CreateShow(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	input, err := parseShowInput(c)
	if err == nil {
		err = db.Transaction(func(tx *gorm.DB) error {
			var artist models.Artist
			if err := tx.First(&artist, input.ArtistID).Error; err != nil {
				return err
			}
			var venue models.Venue
			if err := tx.First(&venue, input.VenueID).Error; err != nil {
				return err
			}
			show := models.Show{
				ArtistID:  artist.ID,
				VenueID:   venue.ID,
				StartTime: input.StartTime,
			}
			return tx.Create(&show).Error
		})
	}

	if err != nil {
		log.Printf("[%s] create show: %v", middleware.GetRequestID(c), err)
		helpers.Flash(c, "An error occurred. Show could not be listed.")
	} else {
		helpers.Flash(c, "Show was successfully listed!")
	}

	renderHome(c)
}
