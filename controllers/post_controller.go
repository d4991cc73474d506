package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vulnlab/socialsite/middleware"
	"github.com/vulnlab/socialsite/services"
	"github.com/vulnlab/socialsite/utils"
)

const debugPostsLimit = 20

// PostController exposes post creation, listing and author search over the
// post service.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a PostController.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// Create stores a new post for the authenticated principal.
func (p *PostController) Create(ctx *gin.Context) {
	var form struct {
		Content string `json:"content" form:"content"`
	}
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "you must be logged in")
		return
	}

	post, err := p.posts.Create(principal.UserID, form.Content)
	if err != nil {
		writePostError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// List returns every post, newest first, with author info.
func (p *PostController) List(ctx *gin.Context) {
	posts, err := p.posts.ListAll()
	if err != nil {
		writePostError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// Search returns posts whose author's username contains the query substring.
// An empty query falls back to the full listing.
func (p *PostController) Search(ctx *gin.Context) {
	query := ctx.Query("username")
	posts, err := p.posts.SearchByAuthor(query)
	if err != nil {
		writePostError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": posts, "query": query})
}

// AdminList is the admin-gated view over all posts. Same data as List; the
// gate itself is what this endpoint demonstrates.
func (p *PostController) AdminList(ctx *gin.Context) {
	posts, err := p.posts.ListAll()
	if err != nil {
		writePostError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// Debug dumps the newest posts without authentication, mirroring a debug
// endpoint left enabled in production. Intentionally part of the vulnerable surface.
func (p *PostController) Debug(ctx *gin.Context) {
	posts, err := p.posts.ListRecent(debugPostsLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

func writePostError(ctx *gin.Context, err error) {
	if errors.Is(err, services.ErrStorage) {
		utils.Sugar.Errorf("post storage error: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "unable to read or write posts")
		return
	}
	utils.Sugar.Errorf("unexpected post error: %v", err)
	utils.Error(ctx, http.StatusInternalServerError, 50021, "server error")
}
