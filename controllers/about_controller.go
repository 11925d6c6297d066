package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AboutController serves the static about pages.
type AboutController struct{}

// NewAboutController creates a new AboutController instance.
func NewAboutController() *AboutController {
	return &AboutController{}
}

func (a *AboutController) Author(ctx *gin.Context) {
	render(ctx, http.StatusOK, "about/author.html", gin.H{"title": "About the author"})
}

func (a *AboutController) Tech(ctx *gin.Context) {
	render(ctx, http.StatusOK, "about/tech.html", gin.H{"title": "Technologies"})
}
