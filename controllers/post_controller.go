package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
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

const indexCachePrefix = "cache:posts:index:"

// PostController serves the feeds, the post page and the post/comment forms.
type PostController struct {
	repo   repositories.ContentRepository
	cfg    config.AppConfig
	cache  *utils.Cache
	logger *zap.Logger
}

// NewPostController creates a new PostController instance.
func NewPostController(repo repositories.ContentRepository, cfg config.AppConfig, cache *utils.Cache, logger *zap.Logger) *PostController {
	return &PostController{repo: repo, cfg: cfg, cache: cache, logger: logger}
}

// Index renders the global feed, newest first.
func (p *PostController) Index(ctx *gin.Context) {
	// Entries are keyed by the page actually served, so a clamped request
	// misses here and falls through to the database.
	var cached utils.Page[models.Post]
	if p.cache.GetJSON(indexCacheKey(utils.ParsePageNumber(ctx.Query("page"))), &cached) {
		render(ctx, http.StatusOK, "posts/index.html", gin.H{"page_obj": &cached})
		return
	}

	page, ok := p.paginate(ctx, p.repo.AllPosts())
	if !ok {
		return
	}
	if p.cfg.IndexCacheSeconds > 0 {
		p.cache.SetJSON(indexCacheKey(page.Number), page, time.Duration(p.cfg.IndexCacheSeconds)*time.Second)
	}
	render(ctx, http.StatusOK, "posts/index.html", gin.H{"page_obj": page})
}

// GroupPosts renders the feed of one group.
func (p *PostController) GroupPosts(ctx *gin.Context) {
	group, posts, err := p.repo.PostsByGroup(ctx.Param("slug"))
	if errors.Is(err, repositories.ErrNotFound) {
		NotFound(ctx)
		return
	}
	if err != nil {
		serverError(ctx, p.logger, "failed to load group", err)
		return
	}

	page, ok := p.paginate(ctx, posts)
	if !ok {
		return
	}
	render(ctx, http.StatusOK, "posts/group_list.html", gin.H{
		"title":    group.Title,
		"group":    group,
		"page_obj": page,
	})
}

// Profile renders the feed of one author with their total post count.
func (p *PostController) Profile(ctx *gin.Context) {
	author, posts, total, err := p.repo.PostsByAuthor(ctx.Param("username"))
	if errors.Is(err, repositories.ErrNotFound) {
		NotFound(ctx)
		return
	}
	if err != nil {
		serverError(ctx, p.logger, "failed to load profile", err)
		return
	}

	page, ok := p.paginate(ctx, posts)
	if !ok {
		return
	}
	render(ctx, http.StatusOK, "posts/profile.html", gin.H{
		"title":      author.DisplayName(),
		"author":     author,
		"count_post": total,
		"page_obj":   page,
	})
}

// PostDetail renders one post with its comments and an empty comment form.
func (p *PostController) PostDetail(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	p.renderDetail(ctx, post, &forms.CommentForm{Errors: forms.Errors{}})
}

// PostCreate shows the new-post form and creates the post on submit.
func (p *PostController) PostCreate(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	form := &forms.PostForm{Errors: forms.Errors{}}

	if ctx.Request.Method != http.MethodPost {
		p.renderPostForm(ctx, form, 0)
		return
	}

	image, ok := p.bindPostForm(ctx, form)
	if !ok {
		p.renderPostForm(ctx, form, 0)
		return
	}

	post := &models.Post{AuthorID: user.ID, Image: image}
	form.Apply(post)
	if err := p.repo.CreatePost(post); err != nil {
		serverError(ctx, p.logger, "failed to create post", err)
		return
	}
	p.cache.InvalidateByPrefix(indexCachePrefix)
	p.logger.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("author_id", user.ID))

	redirect(ctx, profileURL(user.Username), gin.H{"post": post})
}

// PostEdit lets the author change text, group and image of a post.
func (p *PostController) PostEdit(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	user := middleware.CurrentUser(ctx)
	if user.ID != post.AuthorID {
		if p.cfg.EditDeniedPolicy == config.EditDeniedForbidden {
			forbidden(ctx)
			return
		}
		redirect(ctx, profileURL(post.Author.Username), nil)
		return
	}

	if ctx.Request.Method != http.MethodPost {
		p.renderPostForm(ctx, forms.PostFormFrom(post), post.ID)
		return
	}

	form := &forms.PostForm{Errors: forms.Errors{}}
	image, ok := p.bindPostForm(ctx, form)
	if !ok {
		p.renderPostForm(ctx, form, post.ID)
		return
	}

	form.Apply(post)
	if image != "" {
		post.Image = image
	}
	if err := p.repo.UpdatePost(post); err != nil {
		serverError(ctx, p.logger, "failed to update post", err)
		return
	}
	p.cache.InvalidateByPrefix(indexCachePrefix)

	redirect(ctx, postURL(post.ID), gin.H{"post_id": post.ID})
}

// AddComment attaches a comment by the current user to a post.
// An invalid comment re-renders the post page with the error.
func (p *PostController) AddComment(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	form := &forms.CommentForm{}
	if err := ctx.ShouldBind(form); err != nil {
		form.Errors = forms.Errors{}
		form.Errors.AddNonField("invalid request payload")
	} else if form.Validate() {
		comment := &models.Comment{
			Text:     form.Text,
			AuthorID: middleware.CurrentUser(ctx).ID,
			PostID:   post.ID,
		}
		if err := p.repo.CreateComment(comment); err != nil {
			serverError(ctx, p.logger, "failed to create comment", err)
			return
		}
		redirect(ctx, postURL(post.ID), gin.H{"comment_id": comment.ID})
		return
	}

	if utils.WantsJSON(ctx) {
		renderInvalid(ctx, "", form.Errors, nil)
		return
	}
	p.renderDetail(ctx, post, form)
}

func (p *PostController) loadPost(ctx *gin.Context) (*models.Post, bool) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		NotFound(ctx)
		return nil, false
	}
	post, err := p.repo.PostByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		NotFound(ctx)
		return nil, false
	}
	if err != nil {
		serverError(ctx, p.logger, "failed to load post", err)
		return nil, false
	}
	return post, true
}

func (p *PostController) renderDetail(ctx *gin.Context, post *models.Post, form *forms.CommentForm) {
	count, err := p.repo.CountPostsByAuthor(post.AuthorID)
	if err != nil {
		serverError(ctx, p.logger, "failed to count posts", err)
		return
	}
	comments, err := p.repo.CommentsForPost(post.ID)
	if err != nil {
		serverError(ctx, p.logger, "failed to load comments", err)
		return
	}
	render(ctx, http.StatusOK, "posts/post_detail.html", gin.H{
		"title":      post.Excerpt(),
		"post":       post,
		"post_count": count,
		"comments":   comments,
		"form":       form,
	})
}

// bindPostForm binds and validates the submitted post form and stores an
// uploaded image. It reports false when the form must be shown again.
func (p *PostController) bindPostForm(ctx *gin.Context, form *forms.PostForm) (string, bool) {
	if err := ctx.ShouldBind(form); err != nil {
		form.Errors = forms.Errors{}
		form.Errors.AddNonField("invalid request payload")
		return "", false
	}
	if !form.Validate(p.repo) {
		return "", false
	}

	fh, err := ctx.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", true
	}
	if err != nil {
		form.AddImageError(err)
		return "", false
	}
	image, err := utils.SaveImage(fh, p.cfg.MediaRoot, int64(p.cfg.MaxUploadMB)<<20)
	if err != nil {
		p.logger.Warn("image upload rejected", zap.String("filename", fh.Filename), zap.Error(err))
		form.AddImageError(err)
		return "", false
	}
	return image, true
}

func (p *PostController) renderPostForm(ctx *gin.Context, form *forms.PostForm, postID uint) {
	groups, err := p.repo.ListGroups()
	if err != nil {
		serverError(ctx, p.logger, "failed to list groups", err)
		return
	}
	data := gin.H{
		"title":   "New post",
		"form":    form,
		"groups":  groups,
		"is_edit": postID != 0,
		"post_id": postID,
	}
	if postID != 0 {
		data["title"] = "Edit post"
	}
	if form.Errors.Valid() {
		render(ctx, http.StatusOK, "posts/create_post.html", data)
		return
	}
	renderInvalid(ctx, "posts/create_post.html", form.Errors, data)
}

// paginate serves the requested page of src, answering 404 itself under the
// strict policy. It reports false when a response was already written.
func (p *PostController) paginate(ctx *gin.Context, src utils.Source[models.Post]) (*utils.Page[models.Post], bool) {
	page, err := utils.Paginate[models.Post](src, p.cfg.PostPerPage, ctx.Query("page"), p.cfg.PagePolicy == config.PageStrict)
	if errors.Is(err, utils.ErrPageOutOfRange) {
		NotFound(ctx)
		return nil, false
	}
	if err != nil {
		serverError(ctx, p.logger, "failed to list posts", err)
		return nil, false
	}
	return page, true
}

func indexCacheKey(number int) string {
	return fmt.Sprintf("%spage=%d", indexCachePrefix, number)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/"
}
