package services

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vulnlab/socialsite/models"
	"github.com/vulnlab/socialsite/utils"
)

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func TestListAllOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, utils.NewSanitizer(false))
	alice := seedUser(t, db, "alice")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p1 := models.Post{UserID: alice.ID, Content: "first", CreatedAt: base}
	p2 := models.Post{UserID: alice.ID, Content: "second", CreatedAt: base.Add(time.Second)}
	for _, p := range []*models.Post{&p1, &p2} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	posts, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Content != "second" || posts[1].Content != "first" {
		t.Fatalf("wrong order: [%s, %s]", posts[0].Content, posts[1].Content)
	}
	if posts[0].User.Username != "alice" {
		t.Fatalf("author not loaded: %+v", posts[0].User)
	}
}

func TestSearchByAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, utils.NewSanitizer(false))
	doe := seedUser(t, db, "john_doe")
	smith := seedUser(t, db, "jane_smith")

	if _, err := svc.Create(doe.ID, "from doe"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(smith.ID, "from smith"); err != nil {
		t.Fatalf("create: %v", err)
	}

	posts, err := svc.SearchByAuthor("doe")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	if posts[0].User.Username != "john_doe" {
		t.Fatalf("wrong author: %s", posts[0].User.Username)
	}

	// Empty query behaves like a full listing.
	all, err := svc.SearchByAuthor("  ")
	if err != nil {
		t.Fatalf("empty search: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("empty search returned %d posts, want 2", len(all))
	}
}

func TestCreateSanitizesInStrictMode(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, utils.NewSanitizer(false))
	alice := seedUser(t, db, "alice")

	post, err := svc.Create(alice.ID, "Hello <b>world</b>")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Content != "Hello <b>world</b>" {
		t.Fatalf("allowed tag was altered: %q", post.Content)
	}

	post, err = svc.Create(alice.ID, `Hello <script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if strings.Contains(post.Content, "<script") {
		t.Fatalf("script tag survived strict mode: %q", post.Content)
	}
}

func TestCreateStoresRawInPermissiveMode(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, utils.NewSanitizer(true))
	alice := seedUser(t, db, "alice")

	raw := `Hello <script>x</script>`
	post, err := svc.Create(alice.ID, raw)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Content != raw {
		t.Fatalf("permissive mode altered content: %q", post.Content)
	}

	var stored models.Post
	if err := db.First(&stored, post.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Content != raw {
		t.Fatalf("stored content differs: %q", stored.Content)
	}
}
