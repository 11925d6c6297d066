package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/utils"
)

// errBadID marks a path id that is not a positive integer.
var errBadID = errors.New("invalid id")

// render writes an HTML page, or the JSON envelope when the client asks for JSON.
// The current user is added to every HTML page.
func render(ctx *gin.Context, status int, name string, data gin.H) {
	if utils.WantsJSON(ctx) {
		utils.Respond(ctx, status, utils.CodeOK, "success", data)
		return
	}
	page := gin.H{"user": middleware.CurrentUser(ctx)}
	for k, v := range data {
		page[k] = v
	}
	ctx.HTML(status, name, page)
}

// renderInvalid re-renders a form page with its field errors. The status stays 200.
func renderInvalid(ctx *gin.Context, name string, errs map[string]string, data gin.H) {
	if utils.WantsJSON(ctx) {
		utils.Respond(ctx, http.StatusOK, utils.CodeValidation, "validation failed", gin.H{"errors": errs})
		return
	}
	render(ctx, http.StatusOK, name, data)
}

// redirect sends the browser to location; JSON clients get the location plus data.
func redirect(ctx *gin.Context, location string, data gin.H) {
	if utils.WantsJSON(ctx) {
		if data == nil {
			data = gin.H{}
		}
		data["location"] = location
		utils.Success(ctx, data)
		return
	}
	ctx.Redirect(http.StatusFound, location)
}

// NotFound answers with the generic 404 page.
func NotFound(ctx *gin.Context) {
	if utils.WantsJSON(ctx) {
		utils.Error(ctx, http.StatusNotFound, utils.CodeNotFound, "not found")
		return
	}
	render(ctx, http.StatusNotFound, "core/404.html", gin.H{"path": ctx.Request.URL.Path})
}

func forbidden(ctx *gin.Context) {
	if utils.WantsJSON(ctx) {
		utils.Error(ctx, http.StatusForbidden, utils.CodeForbidden, "forbidden")
		return
	}
	render(ctx, http.StatusForbidden, "core/403.html", nil)
}

func serverError(ctx *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.String("path", ctx.Request.URL.Path), zap.Error(err))
	_ = ctx.Error(err)
	if utils.WantsJSON(ctx) {
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, msg)
		return
	}
	render(ctx, http.StatusInternalServerError, "core/500.html", nil)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return uint(id), nil
}
