package services

import (
	"devflow/internal/db"
	"devflow/internal/models"
)

// Rating = SUM(value)，无点赞记录时一律取 0。
// 这些都是纯读操作，空集合不是错误。

// PostRating 统计单篇文章的净赞数
func PostRating(postID uint) int {
	var rating int
	db.DB.Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&rating)
	return rating
}

// CommentRating 统计单条评论的净赞数
func CommentRating(commentID uint) int {
	var rating int
	db.DB.Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&rating)
	return rating
}

// FillPostRatings 批量填充文章列表的 Rating 注解
func FillPostRatings(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type sumResult struct {
		PostID uint
		Rating int
	}
	var results []sumResult
	db.DB.Model(&models.PostLike{}).
		Select("post_id, SUM(value) as rating").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	ratingMap := make(map[uint]int)
	for _, r := range results {
		ratingMap[r.PostID] = r.Rating
	}

	for i := range posts {
		posts[i].Rating = ratingMap[posts[i].ID]
	}
}

// FillCommentRatings 批量填充评论列表的 Rating 注解
func FillCommentRatings(comments []models.Comment) {
	if len(comments) == 0 {
		return
	}

	commentIDs := make([]uint, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	type sumResult struct {
		CommentID uint
		Rating    int
	}
	var results []sumResult
	db.DB.Model(&models.CommentLike{}).
		Select("comment_id, SUM(value) as rating").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&results)

	ratingMap := make(map[uint]int)
	for _, r := range results {
		ratingMap[r.CommentID] = r.Rating
	}

	for i := range comments {
		comments[i].Rating = ratingMap[comments[i].ID]
	}
}

// FillCommentCounts 批量填充文章的评论数量
func FillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}
