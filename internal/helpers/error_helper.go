package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RenderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
	c.Abort()
}

func RenderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	c.Abort()
}
