package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope codes. The first three digits mirror the HTTP status.
const (
	CodeOK              = 0
	CodeValidation      = 40001
	CodeUnauthenticated = 40101
	CodeForbidden       = 40300
	CodeNotFound        = 40400
	CodeRateLimited     = 42901
	CodeInternal        = 50000
)

// Envelope is the body of every JSON answer.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes an Envelope with the given HTTP status.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, Envelope{Code: code, Message: message, Data: data})
}

// Success answers 200 with data.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, CodeOK, "success", data)
}

// Error answers status with code and message and no data.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// WantsJSON reports whether the client prefers the JSON envelope over HTML.
func WantsJSON(ctx *gin.Context) bool {
	return ctx.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
