package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/controllers"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/repositories"
	"github.com/cppla/yatube/templates"
	"github.com/cppla/yatube/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, cfg config.AppConfig, logger *zap.Logger) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file; tests log through the app logger.
	accessLog := logger
	if cfg.GinPath != "" && gin.Mode() != gin.TestMode {
		if gl, err := utils.NewRollingFileLogger(cfg, cfg.GinPath); err == nil {
			accessLog = gl
		} else {
			logger.Warn("access log unavailable, using app logger", zap.Error(err))
		}
	}
	r.Use(utils.Ginzap(accessLog, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(accessLog, true))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	rc := utils.NewRedisClient(cfg)
	repo := repositories.NewContentRepository(db)
	blacklist := utils.NewTokenBlacklist(rc)

	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db, logger))
	r.Use(middleware.AuthOptional(cfg.JWTSecret, blacklist, repo))

	r.SetHTMLTemplate(templates.MustLoad())
	r.Static("/media", cfg.MediaRoot)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	postController := controllers.NewPostController(repo, cfg, utils.NewCache(rc), logger)
	authController := controllers.NewAuthController(repo, cfg, blacklist, logger)
	aboutController := controllers.NewAboutController()
	statsController := controllers.NewStatsController(db, logger)

	r.GET("/", postController.Index)
	r.GET("/group/:slug/", postController.GroupPosts)
	r.GET("/profile/:username/", postController.Profile)
	r.GET("/posts/:id/", postController.PostDetail)

	protected := r.Group("")
	protected.Use(middleware.LoginRequired(cfg.LoginURL), middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	protected.GET("/create/", postController.PostCreate)
	protected.POST("/create/", postController.PostCreate)
	protected.GET("/posts/:id/edit/", postController.PostEdit)
	protected.POST("/posts/:id/edit/", postController.PostEdit)
	protected.POST("/posts/:id/comment/", postController.AddComment)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	authGroup.GET("/signup/", authController.Signup)
	authGroup.POST("/signup/", authController.Signup)
	authGroup.GET("/login/", authController.Login)
	authGroup.POST("/login/", authController.Login)
	authGroup.POST("/logout/", authController.Logout)

	about := r.Group("/about")
	about.GET("/author/", aboutController.Author)
	about.GET("/tech/", aboutController.Tech)

	// Public stats endpoints
	r.GET("/stats/", statsController.GetStats)
	r.GET("/stats/posts/:id/", statsController.GetPostStats)

	r.NoRoute(controllers.NotFound)

	return r
}
