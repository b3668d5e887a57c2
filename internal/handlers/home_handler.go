package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rakhadjo/bandstand/internal/helpers"
)

func renderHome(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"flashes": helpers.TakeFlashes(c),
	})
}

func Index(c *gin.Context) {
	renderHome(c)
}

func NotFound(c *gin.Context) {
	helpers.RenderNotFound(c)
}
