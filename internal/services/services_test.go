package services

import (
	"path/filepath"
	"testing"
	"time"

	"devflow/internal/db"
	"devflow/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = conn
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func createTestPost(t *testing.T, user *models.User, title string, tags ...models.Tag) *models.Post {
	t.Helper()
	post := models.Post{
		Title:   title,
		Content: "content of " + title,
	}
	if user != nil {
		post.UserID = &user.ID
	}
	if err := db.DB.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	if len(tags) > 0 {
		if err := db.DB.Model(&post).Association("Tags").Replace(tags); err != nil {
			t.Fatalf("attach tags: %v", err)
		}
		post.Tags = tags
	}
	return &post
}

func createTestTag(t *testing.T, title string) models.Tag {
	t.Helper()
	tag := models.Tag{Title: title}
	if err := db.DB.Create(&tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

func createTestComment(t *testing.T, post *models.Post, user *models.User, body string) *models.Comment {
	t.Helper()
	comment := models.Comment{PostID: post.ID, Body: body}
	if user != nil {
		comment.UserID = &user.ID
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return &comment
}

func addPostLike(t *testing.T, post *models.Post, user *models.User, value int) {
	t.Helper()
	like := models.PostLike{PostID: post.ID, Value: value}
	if user != nil {
		like.UserID = &user.ID
	}
	if err := db.DB.Create(&like).Error; err != nil {
		t.Fatalf("create post like: %v", err)
	}
}

func addCommentLike(t *testing.T, comment *models.Comment, user *models.User, value int) {
	t.Helper()
	like := models.CommentLike{CommentID: comment.ID, Value: value}
	if user != nil {
		like.UserID = &user.ID
	}
	if err := db.DB.Create(&like).Error; err != nil {
		t.Fatalf("create comment like: %v", err)
	}
}

func addShow(t *testing.T, post *models.Post, user *models.User) {
	t.Helper()
	show := models.PostShow{PostID: post.ID}
	if user != nil {
		show.UserID = &user.ID
	}
	if err := db.DB.Create(&show).Error; err != nil {
		t.Fatalf("create show: %v", err)
	}
}

func backdatePost(t *testing.T, post *models.Post, days int) {
	t.Helper()
	createdAt := time.Now().AddDate(0, 0, -days)
	if err := db.DB.Model(post).UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate post: %v", err)
	}
}
