package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rakhadjo/bandstand/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVenues_GroupedByStateAndCity(t *testing.T) {
	r, db := newTestRouter(t)

	fillmore := models.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA", Address: "1805 Geary Blvd"}
	hill := models.Venue{Name: "Bottom of the Hill", City: "San Francisco", State: "CA", Address: "1233 17th St"}
	mohawk := models.Venue{Name: "Mohawk", City: "Austin", State: "TX", Address: "912 Red River St"}
	artist := models.Artist{Name: "The Headliners", City: "Austin", State: "TX"}
	require.NoError(t, db.Create(&fillmore).Error)
	require.NoError(t, db.Create(&hill).Error)
	require.NoError(t, db.Create(&mohawk).Error)
	require.NoError(t, db.Create(&artist).Error)
	require.NoError(t, db.Create(&models.Show{ArtistID: artist.ID, VenueID: fillmore.ID, StartTime: time.Now().Add(48 * time.Hour)}).Error)

	rec := doGet(r, "/venues")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "San Francisco, CA")
	assert.Contains(t, body, "Austin, TX")
	assert.Contains(t, body, "The Fillmore</a> (1 upcoming)")
	assert.Contains(t, body, "Mohawk</a> (0 upcoming)")
	// Areas are ordered by (state, city) ascending.
	assert.Less(t, strings.Index(body, "San Francisco, CA"), strings.Index(body, "Austin, TX"))
}

func TestGetVenue_PartitionsPastAndUpcoming(t *testing.T) {
	r, db := newTestRouter(t)

	venue := models.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA", Address: "1805 Geary Blvd"}
	artist := models.Artist{Name: "The Headliners", City: "Austin", State: "TX"}
	require.NoError(t, db.Create(&venue).Error)
	require.NoError(t, db.Create(&artist).Error)
	require.NoError(t, db.Create(&models.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: time.Now().Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: time.Now().Add(time.Hour)}).Error)

	rec := doGet(r, "/venues/1")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1 Upcoming Shows")
	assert.Contains(t, body, "1 Past Shows")
	assert.Contains(t, body, "The Headliners")
}

func TestGetVenue_Missing404(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doGet(r, "/venues/999")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 Not Found")
}

func TestCreateVenue_RoundTrip(t *testing.T) {
	r, db := newTestRouter(t)

	rec := doPostForm(r, "/venues/create", url.Values{
		"name":          {"The Dive"},
		"city":          {"Oakland"},
		"state":         {"CA"},
		"address":       {"42 Broadway"},
		"phone":         {"555-0100"},
		"facebook_link": {"https://facebook.com/thedive"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue The Dive was successfully listed!")

	var venue models.Venue
	require.NoError(t, db.First(&venue, 1).Error)
	assert.Equal(t, "The Dive", venue.Name)
	assert.Equal(t, "Oakland", venue.City)
	assert.Equal(t, "CA", venue.State)
	assert.Equal(t, "42 Broadway", venue.Address)
	assert.Equal(t, "555-0100", venue.Phone)
	assert.Equal(t, "https://facebook.com/thedive", venue.FacebookLink)

	detail := doGet(r, "/venues/1")
	assert.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "42 Broadway, Oakland, CA")
	assert.Contains(t, detail.Body.String(), "555-0100")
}

func TestCreateVenue_MissingFieldRollsBack(t *testing.T) {
	r, db := newTestRouter(t)

	rec := doPostForm(r, "/venues/create", url.Values{
		"name":  {"The Dive"},
		"city":  {"Oakland"},
		"state": {"CA"},
		// address, phone, facebook_link absent
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error occurred. Venue could not be listed.")

	var count int64
	require.NoError(t, db.Model(&models.Venue{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteVenue_RemovesVenueAndItsShows(t *testing.T) {
	r, db := newTestRouter(t)

	venue := models.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA", Address: "1805 Geary Blvd"}
	artist := models.Artist{Name: "The Headliners", City: "Austin", State: "TX"}
	require.NoError(t, db.Create(&venue).Error)
	require.NoError(t, db.Create(&artist).Error)
	require.NoError(t, db.Create(&models.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: time.Now().Add(time.Hour)}).Error)

	rec := doDelete(r, "/venues/1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue successfully deleted.")

	var venues, shows int64
	require.NoError(t, db.Model(&models.Venue{}).Count(&venues).Error)
	require.NoError(t, db.Model(&models.Show{}).Count(&shows).Error)
	assert.Equal(t, int64(0), venues)
	assert.Equal(t, int64(0), shows)
}

func TestDeleteVenue_MissingIsNoOp(t *testing.T) {
	r, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Venue{Name: "Survivor", City: "Reno", State: "NV", Address: "1 Main St"}).Error)

	rec := doDelete(r, "/venues/999")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue not found.")

	var count int64
	require.NoError(t, db.Model(&models.Venue{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSearchVenues_EmptyTermReturnsAll(t *testing.T) {
	r, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA", Address: "x"}).Error)
	require.NoError(t, db.Create(&models.Venue{Name: "Mohawk", City: "Austin", State: "TX", Address: "x"}).Error)

	rec := doPostForm(r, "/venues/search", url.Values{"search_term": {""}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 result(s)")
}

func TestSearchVenues_CaseInsensitiveSubstring(t *testing.T) {
	r, db := newTestRouter(t)

	venue := models.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA", Address: "x"}
	artist := models.Artist{Name: "The Headliners", City: "Austin", State: "TX"}
	require.NoError(t, db.Create(&venue).Error)
	require.NoError(t, db.Create(&artist).Error)
	require.NoError(t, db.Create(&models.Venue{Name: "Mohawk", City: "Austin", State: "TX", Address: "x"}).Error)
	require.NoError(t, db.Create(&models.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: time.Now().Add(time.Hour)}).Error)

	rec := doPostForm(r, "/venues/search", url.Values{"search_term": {"FILL"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1 result(s)")
	assert.Contains(t, body, "The Fillmore</a> (1 upcoming)")
	assert.NotContains(t, body, "Mohawk")
}

func TestEditVenue_AppliesAllSubmittedFields(t *testing.T) {
	r, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Venue{Name: "Old Name", City: "Oakland", State: "CA", Address: "42 Broadway"}).Error)

	rec := doPostForm(r, "/venues/1/edit", url.Values{
		"name":                {"New Name"},
		"city":                {"Berkeley"},
		"state":               {"CA"},
		"address":             {"100 University Ave"},
		"phone":               {"555-0199"},
		"website_link":        {"https://newname.example"},
		"facebook_link":       {"https://facebook.com/newname"},
		"image_link":          {"https://img.example/v.jpg"},
		"seeking_talent":      {"y"},
		"seeking_description": {"Looking for loud bands"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/venues/1", rec.Header().Get("Location"))

	var venue models.Venue
	require.NoError(t, db.First(&venue, 1).Error)
	assert.Equal(t, "New Name", venue.Name)
	assert.Equal(t, "Berkeley", venue.City)
	assert.Equal(t, "100 University Ave", venue.Address)
	assert.Equal(t, "https://newname.example", venue.WebsiteLink)
	assert.True(t, venue.SeekingTalent)
	assert.Equal(t, "Looking for loud bands", venue.SeekingDescription)
}

func TestEditVenueForm_MissingRedirectsToListing(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doGet(r, "/venues/999/edit")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/venues", rec.Header().Get("Location"))
}

func TestEditVenue_MissingRedirectsToListing(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doPostForm(r, "/venues/999/edit", url.Values{"name": {"Ghost"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/venues", rec.Header().Get("Location"))
}
