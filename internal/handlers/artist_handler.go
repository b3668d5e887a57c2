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

type artistInput struct {
	Name               string
	City               string
	State              string
	Phone              string
	Genres             []string
	WebsiteLink        string
	FacebookLink       string
	ImageLink          string
	SeekingVenue       bool
	SeekingDescription string
}

func parseArtistInput(c *gin.Context) (artistInput, error) {
	var input artistInput
	fields := map[string]*string{
		"name":          &input.Name,
		"city":          &input.City,
		"state":         &input.State,
		"phone":         &input.Phone,
		"website_link":  &input.WebsiteLink,
		"facebook_link": &input.FacebookLink,
		"image_link":    &input.ImageLink,
	}
	for key, dst := range fields {
		value, ok := c.GetPostForm(key)
		if !ok {
			return input, fmt.Errorf("missing form field %q", key)
		}
		*dst = value
	}

	input.Genres = c.PostFormArray("genres")
	if len(input.Genres) == 0 {
		return input, errors.New("missing form field \"genres\"")
	}

	_, input.SeekingVenue = c.GetPostForm("seeking_venue")
	input.SeekingDescription = c.PostForm("seeking_description")
	return input, nil
}

func ListArtists(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	var artists []models.Artist
	if err := db.Find(&artists).Error; err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "artists.html", gin.H{
		"artists": artists,
		"flashes": helpers.TakeFlashes(c),
	})
}

func SearchArtists(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	term := c.PostForm("search_term")
	now := time.Now()

	var artists []models.Artist
	pattern := "%" + strings.ToLower(term) + "%"
	if err := db.Where("LOWER(name) LIKE ?", pattern).Find(&artists).Error; err != nil {
		helpers.RenderServerError(c)
		return
	}

	data := make([]VenueSummary, 0, len(artists))
	for _, artist := range artists {
		var upcoming int64
		err := db.Model(&models.Show{}).
			Where("artist_id = ? AND start_time > ?", artist.ID, now).
			Count(&upcoming).Error
		if err != nil {
			helpers.RenderServerError(c)
			return
		}
		data = append(data, VenueSummary{
			ID:               artist.ID,
			Name:             artist.Name,
			NumUpcomingShows: int(upcoming),
		})
	}

	c.HTML(http.StatusOK, "search_artists.html", gin.H{
		"results":     SearchResults{Count: len(data), Data: data},
		"search_term": term,
		"flashes":     helpers.TakeFlashes(c),
	})
}

func GetArtist(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	artistID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	var artist models.Artist
	if err := db.First(&artist, artistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RenderNotFound(c)
			return
		}
		helpers.RenderServerError(c)
		return
	}

	var shows []models.Show
	if err := db.Preload("Artist").Preload("Venue").Where("artist_id = ?", artist.ID).Find(&shows).Error; err != nil {
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "show_artist.html", gin.H{
		"artist":  buildArtistPage(artist, shows, time.Now()),
		"flashes": helpers.TakeFlashes(c),
	})
}

func CreateArtistForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new_artist.html", gin.H{
		"flashes": helpers.TakeFlashes(c),
	})
}

func CreateArtist(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	input, err := parseArtistInput(c)
	if err == nil {
		err = db.Transaction(func(tx *gorm.DB) error {
			artist := models.Artist{
				Name:               input.Name,
				City:               input.City,
				State:              input.State,
				Phone:              input.Phone,
				Genres:             models.GenreList(input.Genres),
				WebsiteLink:        input.WebsiteLink,
				FacebookLink:       input.FacebookLink,
				ImageLink:          input.ImageLink,
				SeekingVenue:       input.SeekingVenue,
				SeekingDescription: input.SeekingDescription,
			}
			return tx.Create(&artist).Error
		})
	}

	if err != nil {
		log.Printf("[%s] create artist: %v", middleware.GetRequestID(c), err)
		helpers.Flash(c, fmt.Sprintf("Error: Artist %s could not be listed.", input.Name))
	} else {
		helpers.Flash(c, fmt.Sprintf("Artist %s was successfully listed!", input.Name))
	}

	renderHome(c)
}

func EditArtistForm(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	artistID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	var artist models.Artist
	if err := db.First(&artist, artistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RenderNotFound(c)
			return
		}
		helpers.RenderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "edit_artist.html", gin.H{
		"artist":  artist,
		"flashes": helpers.TakeFlashes(c),
	})
}

// EditArtist redirects to the artist detail view whether or not the update
// succeeded; only the flash message tells the outcomes apart.
func EditArtist(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RenderServerError(c)
		return
	}

	artistID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RenderNotFound(c)
		return
	}

	var artist models.Artist
	if err := db.First(&artist, artistID).Error; err != nil {
		log.Printf("[%s] edit artist %d: %v", middleware.GetRequestID(c), artistID, err)
		helpers.Flash(c, "An Error occurred: Artist could not be updated")
		c.Redirect(http.StatusFound, fmt.Sprintf("/artists/%d", artistID))
		return
	}

	_, seeking := c.GetPostForm("seeking_venue")
	err = db.Transaction(func(tx *gorm.DB) error {
		artist.Name = c.PostForm("name")
		artist.City = c.PostForm("city")
		artist.State = c.PostForm("state")
		artist.Phone = c.PostForm("phone")
		artist.WebsiteLink = c.PostForm("website_link")
		artist.FacebookLink = c.PostForm("facebook_link")
		artist.ImageLink = c.PostForm("image_link")
		artist.SeekingVenue = seeking
		artist.SeekingDescription = c.PostForm("seeking_description")
		if genres := c.PostFormArray("genres"); len(genres) > 0 {
			artist.Genres = models.GenreList(genres)
		}
		return tx.Save(&artist).Error
	})
	if err != nil {
		log.Printf("[%s] edit artist %d: %v", middleware.GetRequestID(c), artist.ID, err)
		helpers.Flash(c, "An Error occurred: Artist could not be updated")
	} else {
		helpers.Flash(c, fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/artists/%d", artistID))
}
