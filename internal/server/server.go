package server

import (
	"fmt"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rakhadjo/bandstand/config"
	"github.com/rakhadjo/bandstand/internal/handlers"
	"github.com/rakhadjo/bandstand/internal/helpers"
	"github.com/rakhadjo/bandstand/internal/middleware"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := NewRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func NewRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		helpers.RenderServerError(c)
	}))

	r.SetHTMLTemplate(loadTemplates())

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "bandstand-dev-secret"
	}
	r.Use(sessions.Sessions("bandstand_session", cookie.NewStore([]byte(secret))))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.DatabaseMiddleware(db))

	setupRoutes(r)

	return r
}

func setupRoutes(r *gin.Engine) {
	r.GET("/", handlers.Index)

	venues := r.Group("/venues")
	{
		venues.GET("", handlers.ListVenues)
		venues.POST("/search", handlers.SearchVenues)
		venues.GET("/create", handlers.CreateVenueForm)
		venues.POST("/create", handlers.CreateVenue)
		venues.GET("/:id", handlers.GetVenue)
		venues.DELETE("/:id", handlers.DeleteVenue)
		venues.GET("/:id/edit", handlers.EditVenueForm)
		venues.POST("/:id/edit", handlers.EditVenue)
	}

	artists := r.Group("/artists")
	{
		artists.GET("", handlers.ListArtists)
		artists.POST("/search", handlers.SearchArtists)
		artists.GET("/create", handlers.CreateArtistForm)
		artists.POST("/create", handlers.CreateArtist)
		artists.GET("/:id", handlers.GetArtist)
		artists.GET("/:id/edit", handlers.EditArtistForm)
		artists.POST("/:id/edit", handlers.EditArtist)
	}

	shows := r.Group("/shows")
	{
		shows.GET("", handlers.ListShows)
		shows.GET("/create", handlers.CreateShowForm)
		shows.POST("/create", handlers.CreateShow)
	}

	r.NoRoute(handlers.NotFound)
}
