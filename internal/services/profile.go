package services

import (
	"devflow/internal/db"
	"devflow/internal/models"
)

// ProfileStats 个人主页的声望统计。
// Reputation = 自己文章收到的净赞 + 自己文章被浏览的次数 + 自己评论收到的净赞，
// 每一项在没有记录时都取 0。
type ProfileStats struct {
	Reputation   int `json:"reputation"`
	PostLikes    int `json:"post_likes"`
	PostShows    int `json:"post_shows"`
	CommentLikes int `json:"comment_likes"`
}

// CommentedPost 当前用户评论过的别人的文章，以及用户在该文章下的全部评论
type CommentedPost struct {
	Post         models.Post      `json:"post"`
	UserComments []models.Comment `json:"user_comments"`
}

// UserStats 计算用户的声望各分项
func UserStats(userID uint) ProfileStats {
	var stats ProfileStats

	db.DB.Model(&models.PostLike{}).
		Joins("JOIN posts ON posts.id = post_likes.post_id").
		Where("posts.user_id = ?", userID).
		Select("COALESCE(SUM(post_likes.value), 0)").
		Scan(&stats.PostLikes)

	var shows int64
	db.DB.Model(&models.PostShow{}).
		Joins("JOIN posts ON posts.id = post_shows.post_id").
		Where("posts.user_id = ?", userID).
		Count(&shows)
	stats.PostShows = int(shows)

	db.DB.Model(&models.CommentLike{}).
		Joins("JOIN comments ON comments.id = comment_likes.comment_id").
		Where("comments.user_id = ?", userID).
		Select("COALESCE(SUM(comment_likes.value), 0)").
		Scan(&stats.CommentLikes)

	stats.Reputation = stats.PostLikes + stats.PostShows + stats.CommentLikes
	return stats
}

// UserPosts 用户发布的文章，最新在前
func UserPosts(userID uint) []models.Post {
	var posts []models.Post
	db.DB.Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts)
	FillPostRatings(posts)
	return posts
}

// UserComments 用户发表的全部评论（不保证顺序）
func UserComments(userID uint) []models.Comment {
	var comments []models.Comment
	db.DB.Preload("Post").
		Where("user_id = ?", userID).
		Find(&comments)
	return comments
}

// UserTagUsage 用户文章里用过的标签，按使用次数倒序
func UserTagUsage(userID uint) []models.Tag {
	var tags []models.Tag
	db.DB.Model(&models.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("posts.user_id = ?", userID).
		Group("tags.id").
		Order("post_count DESC, tags.id ASC").
		Find(&tags)
	return tags
}

// CommentedPosts 用户评论过的其他人的文章，按用户在每篇下的评论条数倒序
func CommentedPosts(userID uint) []CommentedPost {
	type countRow struct {
		PostID uint
		Count  int
	}
	var rows []countRow
	db.DB.Model(&models.Comment{}).
		Select("comments.post_id, COUNT(*) AS count").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("comments.user_id = ? AND (posts.user_id IS NULL OR posts.user_id <> ?)", userID, userID).
		Group("comments.post_id").
		Order("count DESC, comments.post_id ASC").
		Scan(&rows)

	result := make([]CommentedPost, 0, len(rows))
	for _, row := range rows {
		var post models.Post
		if err := db.DB.Preload("User").Preload("Tags").First(&post, row.PostID).Error; err != nil {
			continue
		}
		var comments []models.Comment
		db.DB.Where("post_id = ? AND user_id = ?", row.PostID, userID).
			Order("created_at ASC").
			Find(&comments)
		result = append(result, CommentedPost{Post: post, UserComments: comments})
	}
	return result
}
