package services

import (
	"errors"
	"testing"

	"devflow/internal/db"
	"devflow/internal/models"
)

func TestVoteValue(t *testing.T) {
	if got := VoteValue("like"); got != 1 {
		t.Errorf("like: expected 1, got %d", got)
	}
	if got := VoteValue("dislike"); got != -1 {
		t.Errorf("dislike: expected -1, got %d", got)
	}
	if got := VoteValue("anything-else"); got != -1 {
		t.Errorf("unknown button: expected -1, got %d", got)
	}
}

func TestLikePost(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	post := createTestPost(t, user, "post")

	if err := LikePost(post.ID, user.ID, 1); err != nil {
		t.Fatalf("LikePost failed: %v", err)
	}
	if err := LikePost(post.ID, user.ID, -1); err != nil {
		t.Fatalf("second LikePost failed: %v", err)
	}

	// 同一用户的多次投票全部保留
	var count int64
	db.DB.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", post.ID, user.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 like rows, got %d", count)
	}
	if rating := PostRating(post.ID); rating != 0 {
		t.Errorf("expected rating 0, got %d", rating)
	}
}

func TestLikePostRejectsBadValue(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	post := createTestPost(t, user, "post")

	for _, v := range []int{0, 2, -5} {
		if err := LikePost(post.ID, user.ID, v); !errors.Is(err, ErrValidation) {
			t.Errorf("value %d: expected ErrValidation, got %v", v, err)
		}
	}
}

func TestLikePostNotFound(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	if err := LikePost(999, user.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLikeComment(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	post := createTestPost(t, user, "post")
	comment := createTestComment(t, post, user, "nice")

	postID, err := LikeComment(comment.ID, user.ID, 1)
	if err != nil {
		t.Fatalf("LikeComment failed: %v", err)
	}
	if postID != post.ID {
		t.Errorf("expected parent post id %d, got %d", post.ID, postID)
	}
	if rating := CommentRating(comment.ID); rating != 1 {
		t.Errorf("expected rating 1, got %d", rating)
	}

	if _, err := LikeComment(999, user.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserLiked(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	post := createTestPost(t, alice, "post")
	comment := createTestComment(t, post, alice, "hi")

	addPostLike(t, post, alice, 1)
	addCommentLike(t, comment, alice, -1)

	if !UserLikedPost(post.ID, alice.ID) {
		t.Error("expected alice to have liked the post")
	}
	if UserLikedPost(post.ID, bob.ID) {
		t.Error("expected bob not to have liked the post")
	}
	if !UserLikedComment(comment.ID, alice.ID) {
		t.Error("expected alice to have voted on the comment")
	}
	if UserLikedComment(comment.ID, bob.ID) {
		t.Error("expected bob not to have voted on the comment")
	}
}
