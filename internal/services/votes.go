package services

import (
	"fmt"

	"devflow/internal/db"
	"devflow/internal/models"
)

// VoteValue 表单按钮到分值的映射：like -> +1，其余 -> -1
func VoteValue(button string) int {
	if button == "like" {
		return 1
	}
	return -1
}

// LikePost 给文章追加一条投票记录。
// 不做去重：每次调用都是一次独立的投票事件。
func LikePost(postID, userID uint, value int) error {
	if value != 1 && value != -1 {
		return fmt.Errorf("vote value %d: %w", value, ErrValidation)
	}
	post, err := GetPost(postID)
	if err != nil {
		return err
	}
	like := models.PostLike{
		PostID: post.ID,
		UserID: &userID,
		Value:  value,
	}
	return db.DB.Create(&like).Error
}

// LikeComment 给评论追加一条投票记录，返回所属文章 ID 供跳转使用
func LikeComment(commentID, userID uint, value int) (uint, error) {
	if value != 1 && value != -1 {
		return 0, fmt.Errorf("vote value %d: %w", value, ErrValidation)
	}
	comment, err := GetComment(commentID)
	if err != nil {
		return 0, err
	}
	like := models.CommentLike{
		CommentID: comment.ID,
		UserID:    &userID,
		Value:     value,
	}
	if err := db.DB.Create(&like).Error; err != nil {
		return 0, err
	}
	return comment.PostID, nil
}

// UserLikedPost 当前用户是否给文章投过票（详情页高亮用）
func UserLikedPost(postID, userID uint) bool {
	var count int64
	db.DB.Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count)
	return count > 0
}

// UserLikedComment 当前用户是否给评论投过票
func UserLikedComment(commentID, userID uint) bool {
	var count int64
	db.DB.Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count)
	return count > 0
}
