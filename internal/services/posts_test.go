package services

import (
	"errors"
	"testing"
	"time"

	"devflow/internal/db"
	"devflow/internal/models"
)

func TestCreatePostWithTags(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	post, err := CreatePost(user.ID, PostInput{
		Title:   "hello",
		Content: "world",
		Tags:    "#go#web",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected post to be persisted")
	}
	if len(post.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(post.Tags))
	}

	got, err := GetPost(post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.UserID == nil || *got.UserID != user.ID {
		t.Errorf("expected owner %d, got %v", user.ID, got.UserID)
	}
}

func TestCreatePostValidation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	cases := []PostInput{
		{Title: "", Content: "c", Tags: "#a"},
		{Title: "t", Content: "", Tags: "#a"},
		{Title: "t", Content: "c", Tags: ""},
	}
	for _, in := range cases {
		if _, err := CreatePost(user.ID, in); !errors.Is(err, ErrValidation) {
			t.Errorf("input %+v: expected ErrValidation, got %v", in, err)
		}
	}

	var count int64
	db.DB.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no posts persisted, got %d", count)
	}
}

func TestUpdatePostReplacesTags(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	post, err := CreatePost(user.ID, PostInput{Title: "t", Content: "c", Tags: "#old"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated, err := UpdatePost(post.ID, PostInput{
		Title:       "t2",
		Content:     "c2",
		ContentCode: "fmt.Println()",
		Tags:        "#new#another",
	})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Title != "t2" || updated.ContentCode != "fmt.Println()" {
		t.Errorf("fields not updated: %+v", updated)
	}
	if got := TagsToString(updated.Tags); got != "#new #another" {
		t.Errorf("expected replaced tags, got %q", got)
	}

	// 旧标签行本身保留，只解除关联
	var tagCount int64
	db.DB.Model(&models.Tag{}).Count(&tagCount)
	if tagCount != 3 {
		t.Errorf("expected 3 tag rows, got %d", tagCount)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := UpdatePost(999, PostInput{Title: "t", Content: "c", Tags: "#a"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePostCascades(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	tag := createTestTag(t, "go")
	post := createTestPost(t, user, "doomed", tag)
	comment := createTestComment(t, post, user, "a comment")
	addCommentLike(t, comment, user, 1)
	addPostLike(t, post, user, 1)
	addShow(t, post, user)

	if err := DeletePost(post.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	for table, model := range map[string]interface{}{
		"posts":         &models.Post{},
		"comments":      &models.Comment{},
		"post_likes":    &models.PostLike{},
		"comment_likes": &models.CommentLike{},
		"post_shows":    &models.PostShow{},
	} {
		var count int64
		db.DB.Model(model).Count(&count)
		if count != 0 {
			t.Errorf("expected %s to be empty, got %d rows", table, count)
		}
	}

	// 标签从不级联删除
	var tagCount int64
	db.DB.Model(&models.Tag{}).Count(&tagCount)
	if tagCount != 1 {
		t.Errorf("expected tag row to survive, got %d", tagCount)
	}
}

func TestDeleteCommentKeepsPost(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	post := createTestPost(t, user, "post")
	comment := createTestComment(t, post, user, "bye")
	addCommentLike(t, comment, user, 1)

	postID, err := DeleteComment(comment.ID)
	if err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}
	if postID != post.ID {
		t.Errorf("expected parent post id %d, got %d", post.ID, postID)
	}

	var commentCount, likeCount int64
	db.DB.Model(&models.Comment{}).Count(&commentCount)
	db.DB.Model(&models.CommentLike{}).Count(&likeCount)
	if commentCount != 0 || likeCount != 0 {
		t.Errorf("expected comment and its likes gone, got %d / %d", commentCount, likeCount)
	}

	if _, err := GetPost(post.ID); err != nil {
		t.Errorf("expected parent post to survive: %v", err)
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	if _, err := CreateComment(999, user.ID, "hello"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostCommentsNewestFirstWithRatings(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	post := createTestPost(t, user, "post")
	first := createTestComment(t, post, user, "first")
	db.DB.Model(first).UpdateColumn("created_at", first.CreatedAt.Add(-time.Hour))
	second := createTestComment(t, post, user, "second")
	addCommentLike(t, second, user, 1)

	comments := PostComments(post.ID)
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].ID != second.ID {
		t.Errorf("expected newest comment first")
	}
	if comments[0].Rating != 1 || comments[1].Rating != 0 {
		t.Errorf("unexpected ratings: %d, %d", comments[0].Rating, comments[1].Rating)
	}
}
