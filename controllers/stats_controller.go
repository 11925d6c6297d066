package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

// StatsController provides site statistics such as counts and daily page views.
type StatsController struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB, logger *zap.Logger) *StatsController {
	return &StatsController{db: db, logger: logger}
}

// GetStats returns aggregate statistics for the site.
func (s *StatsController) GetStats(ctx *gin.Context) {
	counts := gin.H{}
	for key, model := range map[string]interface{}{
		"user_count":    &models.User{},
		"group_count":   &models.Group{},
		"post_count":    &models.Post{},
		"comment_count": &models.Comment{},
	} {
		var n int64
		if err := s.db.Model(model).Count(&n).Error; err != nil {
			// Fallback to 0 instead of failing the whole endpoint
			s.logger.Warn("stats count failed", zap.String("key", key), zap.Error(err))
		}
		counts[key] = n
	}

	start, end := today()
	var views int64
	if err := s.db.Model(&models.PageView{}).
		Where("date >= ? AND date < ?", start, end).
		Select("COALESCE(SUM(count),0)").
		Scan(&views).Error; err != nil {
		views = 0
	}
	counts["daily_view_count"] = views

	utils.Success(ctx, counts)
}

// GetPostStats returns page views and comment count for one post.
func (s *StatsController) GetPostStats(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		NotFound(ctx)
		return
	}

	var exists int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", id).Count(&exists).Error; err != nil || exists == 0 {
		NotFound(ctx)
		return
	}

	var views int64
	if err := s.db.Model(&models.PageView{}).
		Where("path = ?", postURL(id)).
		Select("COALESCE(SUM(count),0)").
		Scan(&views).Error; err != nil {
		views = 0
	}

	var comments int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", id).Count(&comments).Error; err != nil {
		comments = 0
	}

	utils.Success(ctx, gin.H{
		"views":          views,
		"comments_count": comments,
	})
}

func today() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
