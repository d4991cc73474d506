package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vulnlab/socialsite/models"
	"github.com/vulnlab/socialsite/utils"
)

// PostService stores and retrieves posts. Content passes through the
// configured sanitizer before it is persisted; listings always come back
// newest first with the author preloaded.
type PostService struct {
	db        *gorm.DB
	sanitizer *utils.Sanitizer
}

// NewPostService creates a PostService using the given sanitizer.
func NewPostService(db *gorm.DB, sanitizer *utils.Sanitizer) *PostService {
	return &PostService{db: db, sanitizer: sanitizer}
}

// Create persists a post for the given author. The caller guarantees that
// authorID belongs to the authenticated principal.
func (s *PostService) Create(authorID uint, rawContent string) (models.Post, error) {
	if s.sanitizer.Permissive() {
		utils.Sugar.Warnf("INSECURE mode is ON: storing raw HTML for user %d (stored XSS vulnerability)", authorID)
	}
	post := models.Post{
		UserID:  authorID,
		Content: s.sanitizer.Sanitize(rawContent),
	}
	if err := s.db.Create(&post).Error; err != nil {
		return models.Post{}, fmt.Errorf("%w: creating post: %v", ErrStorage, err)
	}
	return post, nil
}

// ListAll returns every post with its author, strictly descending by creation
// time. The id tiebreak keeps same-timestamp posts in reverse insertion order.
func (s *PostService) ListAll() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("User").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing posts: %v", ErrStorage, err)
	}
	return posts, nil
}

// SearchByAuthor returns posts whose author's username contains the given
// substring, newest first. An empty query matches everything.
func (s *PostService) SearchByAuthor(usernameSubstring string) ([]models.Post, error) {
	q := strings.TrimSpace(usernameSubstring)
	if q == "" {
		return s.ListAll()
	}
	var posts []models.Post
	err := s.db.Preload("User").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("users.username LIKE ?", "%"+q+"%").
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: searching posts: %v", ErrStorage, err)
	}
	return posts, nil
}

// ListRecent returns the newest posts up to limit, without author preload.
// Backs the unauthenticated debug endpoint.
func (s *PostService) ListRecent(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing recent posts: %v", ErrStorage, err)
	}
	return posts, nil
}
