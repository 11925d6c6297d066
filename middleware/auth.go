package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

const (
	// ContextUserKey stores the authenticated *models.User inside Gin context.
	ContextUserKey = "user"
	// ContextTokenKey stores the raw JWT the request was authenticated with.
	ContextTokenKey = "token"
	// TokenCookie is the cookie the login handler sets.
	TokenCookie = "token"
)

// UserLoader resolves the user a token was issued for.
type UserLoader interface {
	UserByID(id uint) (*models.User, error)
}

// AuthOptional identifies the user from the token cookie or a Bearer header.
// Anonymous requests pass through untouched.
func AuthOptional(secret string, blacklist *utils.TokenBlacklist, users UserLoader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := bearerToken(ctx)
		if tokenString == "" {
			tokenString, _ = ctx.Cookie(TokenCookie)
		}
		if tokenString == "" {
			ctx.Next()
			return
		}

		if blacklist != nil && blacklist.IsRevoked(tokenString) {
			ctx.Next()
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			ctx.Next()
			return
		}

		user, err := users.UserByID(claims.UserID)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Next()
	}
}

// LoginRequired sends anonymous visitors to loginURL with the current path as ?next=.
// JSON clients get a 401 envelope instead.
func LoginRequired(loginURL string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if CurrentUser(ctx) != nil {
			ctx.Next()
			return
		}
		if utils.WantsJSON(ctx) {
			utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "authentication required")
			ctx.Abort()
			return
		}
		target := loginURL + "?next=" + url.QueryEscape(ctx.Request.URL.RequestURI())
		ctx.Redirect(http.StatusFound, target)
		ctx.Abort()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(ctx *gin.Context) *models.User {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentToken returns the JWT the request was authenticated with.
func CurrentToken(ctx *gin.Context) string {
	return ctx.GetString(ContextTokenKey)
}

func bearerToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
