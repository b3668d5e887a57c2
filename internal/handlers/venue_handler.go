package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rakhadjo/bandstand/internal/helpers"
	"github.com/rakhadjo/bandstand/internal/middleware"
	"github.com/rakhadjo/bandstand/internal/models"
	"gorm.io/gorm"
)

type venueInput struct {
	Name         string
	City         string
	State        string
	Address      string
	Phone        string
	FacebookLink string
}

// parseVenueInput extracts the creation form. Every field listed here must be
// present in the submission; values are stored as-is.
func parseVenueInput(c *gin.Context) (venueInput, error) {
	var input venueInput
	fields := map[string]*string{
		"name":          &input.Name,
		"city":          &input.City,
		"state":         &input.State,
		"address":       &input.Address,
		"phone":         &input.Phone,
		"facebook_link": &input.FacebookLink,
	}
	for key, dst := range fields {
		value, ok := c.GetPostForm(key)
		if !ok {
			return input, fmt.Errorf("missing form field %q", key)
		}
		*dst = value
	}
	return input, nil
}

type venueEditInput struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	WebsiteLink        string
	FacebookLink       string
	ImageLink          string
	SeekingTalent      bool
	SeekingDescription string
}

func parseVenueEditInput(c *gin.Context) venueEditInput {
	_, seeking := c.GetPostForm("seeking_talent")
	return venueEditInput{
		Name:               c.PostForm("name"),
		City:               c.PostForm("city"),
		State:              c.PostForm("state"),
		Address:            c.PostForm("address"),
		Phone:              c.PostForm("phone"),
		WebsiteLink:        c.PostForm("website_link"),
		FacebookLink:       c.PostForm("facebook_link"),
		ImageLink:          c.PostForm("image_link"),
		SeekingTalent:      seeking,
		SeekingDescription: c.PostForm("seeking_description"),
	}
}

func renderVenueList(c *gin.Context, db *gorm.DB) {
	now := time.Now()

	var venues []models.Venue
	if err := db.Order("state, city, id").Find(&venues).Error; err != nil {
		helpers.RenderServerError(c)
		return
	}

	counts, err := venueUpcomingCounts(db, now)
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "venues.html", gin.H{
		"areas":   groupVenuesByArea(venues, counts),
		"flashes": helpers.TakeFlashes(c),
	})
}

func ListVenues(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}
	renderVenueList(c, db)
}

func SearchVenues(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	term := c.PostForm("search_term")

	var venues []models.Venue
	pattern := "%" + strings.ToLower(term) + "%"
	if err := db.Where("LOWER(name) LIKE ?", pattern).Find(&venues).Error; err != nil {
		helpers.RenderServerError(c)
		return
	}

	counts, err := venueUpcomingCounts(db, time.Now())
	if err != nil {
		helpers.RenderServerError(c)
		return
	}

	data := make([]VenueSummary, 0, len(venues))
	for _, venue := range venues {
		data = append(data, VenueSummary{
			ID:               venue.ID,
			Name:             venue.Name,
			NumUpcomingShows: counts[venue.ID],
		})
	}

	c.HTML(http.StatusOK, "search_venues.html", gin.H{
		"results":     SearchResults{Count: len(data), Data: data},
		"search_term": term,
		"flashes":     helpers.TakeFlashes(c),
	})
}

func GetVenue(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	venueID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	var venue models.Venue
	if err := db.First(&venue, venueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RenderNotFound(c)
			return
		}
		helpers.RenderServerError(c)
		return
	}

	var shows []models.Show
	if err := db.Preload("Artist").Preload("Venue").Where("venue_id = ?", venue.ID).Find(&shows).Error; err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "show_venue.html", gin.H{
		"venue":   buildVenuePage(venue, shows, time.Now()),
		"flashes": helpers.TakeFlashes(c),
	})
}

func CreateVenueForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new_venue.html", gin.H{
		"flashes": helpers.TakeFlashes(c),
	})
}

func CreateVenue(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	input, err := parseVenueInput(c)
	if err == nil {
		err = db.Transaction(func(tx *gorm.DB) error {
			venue := models.Venue{
				Name:         input.Name,
				City:         input.City,
				State:        input.State,
				Address:      input.Address,
				Phone:        input.Phone,
				FacebookLink: input.FacebookLink,
			}
			return tx.Create(&venue).Error
		})
	}

	if err != nil {
		log.Printf("[%s] create venue: %v", middleware.GetRequestID(c), err)
		helpers.Flash(c, "An error occurred. Venue could not be listed.")
	} else {
		helpers.Flash(c, fmt.Sprintf("Venue %s was successfully listed!", input.Name))
	}

	renderHome(c)
}

func DeleteVenue(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	venueID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	var venue models.Venue
	if err := db.First(&venue, venueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.Flash(c, "Venue not found.")
			renderVenueList(c, db)
			return
		}
		helpers.RenderServerError(c)
		return
	}

	// The venue's shows go with it; a show cannot outlive its venue.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", venue.ID).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(&venue).Error
	})
	if err != nil {
		log.Printf("[%s] delete venue %d: %v", middleware.GetRequestID(c), venue.ID, err)
		helpers.Flash(c, "An error occurred. Venue could not be deleted.")
	} else {
		helpers.Flash(c, "Venue successfully deleted.")
	}

	renderVenueList(c, db)
}

func EditVenueForm(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	venueID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.Flash(c, "Venue not found!")
		c.Redirect(http.StatusFound, "/venues")
		return
	}

	var venue models.Venue
	if err := db.First(&venue, venueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.Flash(c, "Venue not found!")
			c.Redirect(http.StatusFound, "/venues")
			return
		}
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "edit_venue.html", gin.H{
		"venue":   venue,
		"flashes": helpers.TakeFlashes(c),
	})
}

func EditVenue(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	venueID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.Flash(c, "Venue not found!")
		c.Redirect(http.StatusFound, "/venues")
		return
	}

	var venue models.Venue
	if err := db.First(&venue, venueID).Error; err != nil {
		helpers.Flash(c, "Venue not found!")
		c.Redirect(http.StatusFound, "/venues")
		return
	}

	// Every submitted field is applied as-is; last writer wins.
	input := parseVenueEditInput(c)
	err = db.Transaction(func(tx *gorm.DB) error {
		venue.Name = input.Name
		venue.City = input.City
		venue.State = input.State
		venue.Address = input.Address
		venue.Phone = input.Phone
		venue.WebsiteLink = input.WebsiteLink
		venue.FacebookLink = input.FacebookLink
		venue.ImageLink = input.ImageLink
		venue.SeekingTalent = input.SeekingTalent
		venue.SeekingDescription = input.SeekingDescription
		return tx.Save(&venue).Error
	})
	if err != nil {
		log.Printf("[%s] edit venue %d: %v", middleware.GetRequestID(c), venue.ID, err)
		helpers.Flash(c, "An Error occurred: Venue could not be updated")
	} else {
		helpers.Flash(c, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/venues/%d", venueID))
}
