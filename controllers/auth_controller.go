package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/forms"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repositories"
	"github.com/cppla/yatube/utils"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	repo      repositories.ContentRepository
	cfg       config.AppConfig
	blacklist *utils.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(repo repositories.ContentRepository, cfg config.AppConfig, blacklist *utils.TokenBlacklist, logger *zap.Logger) *AuthController {
	return &AuthController{repo: repo, cfg: cfg, blacklist: blacklist, logger: logger}
}

// Signup registers a new account and logs it in.
func (a *AuthController) Signup(ctx *gin.Context) {
	form := &forms.SignupForm{Errors: forms.Errors{}}
	if ctx.Request.Method != http.MethodPost {
		render(ctx, http.StatusOK, "users/signup.html", gin.H{"title": "Sign up", "form": form})
		return
	}

	if err := ctx.ShouldBind(form); err != nil {
		form.Errors = forms.Errors{}
		form.Errors.AddNonField("invalid request payload")
	} else if form.Validate() {
		user, err := a.createUser(form)
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername):
			form.Errors.Add("username", "A user with that username already exists.")
		case errors.Is(err, utils.ErrPasswordTooLong):
			form.Errors.Add("password", "Ensure this value has at most 72 bytes.")
		case err != nil:
			serverError(ctx, a.logger, "failed to create user", err)
			return
		default:
			a.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
			if token, ok := a.startSession(ctx, user); ok {
				redirect(ctx, "/", gin.H{"user": user, "token": token})
			}
			return
		}
	}

	form.Password, form.Password2 = "", ""
	renderInvalid(ctx, "users/signup.html", form.Errors, gin.H{"title": "Sign up", "form": form})
}

func (a *AuthController) createUser(form *forms.SignupForm) (*models.User, error) {
	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		PasswordHash: hash,
	}
	if err := a.repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by username and password and sets the session cookie.
func (a *AuthController) Login(ctx *gin.Context) {
	form := &forms.LoginForm{Next: ctx.Query("next"), Errors: forms.Errors{}}
	if ctx.Request.Method != http.MethodPost {
		render(ctx, http.StatusOK, "users/login.html", gin.H{"title": "Log in", "form": form})
		return
	}

	if err := ctx.ShouldBind(form); err != nil {
		form.Errors = forms.Errors{}
		form.Errors.AddNonField("invalid request payload")
	} else if form.Validate() {
		user, err := a.repo.UserByUsername(form.Username)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			serverError(ctx, a.logger, "failed to load user", err)
			return
		}
		if err == nil && utils.CheckPassword(user.PasswordHash, form.Password) {
			if token, ok := a.startSession(ctx, user); ok {
				redirect(ctx, forms.SafeNext(form.Next), gin.H{"user": user, "token": token})
			}
			return
		}
		form.Errors.AddNonField("Please enter a correct username and password.")
	}

	form.Password = ""
	renderInvalid(ctx, "users/login.html", form.Errors, gin.H{"title": "Log in", "form": form})
}

// Logout revokes the current token and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token := middleware.CurrentToken(ctx); token != "" {
		expiresAt := time.Now().Add(a.tokenTTL())
		if claims, err := utils.ParseToken(a.cfg.JWTSecret, token); err == nil && claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		a.blacklist.Revoke(token, expiresAt)
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookie, "", -1, "/", "", a.cfg.CookieSecure, true)
	redirect(ctx, "/", nil)
}

// startSession issues a token and stores it in the cookie.
func (a *AuthController) startSession(ctx *gin.Context, user *models.User) (string, bool) {
	token, err := utils.GenerateToken(a.cfg.JWTSecret, user.ID, user.Username, a.tokenTTL())
	if err != nil {
		serverError(ctx, a.logger, "failed to generate token", err)
		return "", false
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookie, token, int(a.tokenTTL().Seconds()), "/", "", a.cfg.CookieSecure, true)
	return token, true
}

func (a *AuthController) tokenTTL() time.Duration {
	return time.Duration(a.cfg.TokenTTLHours) * time.Hour
}
