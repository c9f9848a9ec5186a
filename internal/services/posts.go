package services

import (
	"errors"
	"fmt"
	"strings"

	"devflow/internal/db"
	"devflow/internal/models"

	"gorm.io/gorm"
)

// PostInput 提交/编辑文章的表单字段
type PostInput struct {
	Title       string
	Content     string
	ContentCode string // 可选
	Tags        string // "#a#b" 形式
}

func (in PostInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title: %w", ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("content: %w", ErrValidation)
	}
	if strings.TrimSpace(in.Tags) == "" {
		return fmt.Errorf("tags: %w", ErrValidation)
	}
	return nil
}

// GetPost 按 ID 取文章，带作者和标签
func GetPost(postID uint) (*models.Post, error) {
	var post models.Post
	if err := db.DB.Preload("User").Preload("Tags").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost 创建文章并关联标签。
// 标签解析和关联写入与文章创建在同一事务里，避免标签集只写了一半。
func CreatePost(userID uint, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	tags, err := TagsCreator(in.Tags)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:      &userID,
		Title:       in.Title,
		Content:     in.Content,
		ContentCode: in.ContentCode,
	}

	tx := db.DB.Begin()
	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&post).Association("Tags").Replace(tags); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	post.Tags = tags
	return &post, nil
}

// UpdatePost 更新标题/正文/代码块并重建标签集
func UpdatePost(postID uint, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	post, err := GetPost(postID)
	if err != nil {
		return nil, err
	}

	tags, err := TagsCreator(in.Tags)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	post.ContentCode = in.ContentCode

	tx := db.DB.Begin()
	if err := tx.Save(post).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	post.Tags = tags
	return post, nil
}

// DeletePost 删除文章，级联删除其评论（含评论点赞）、点赞、浏览记录和标签关联。
// 标签本身从不删除。
func DeletePost(postID uint) error {
	post, err := GetPost(postID)
	if err != nil {
		return err
	}

	tx := db.DB.Begin()

	var commentIDs []uint
	if err := tx.Model(&models.Comment{}).Where("post_id = ?", post.ID).Pluck("id", &commentIDs).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostShow{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(post).Association("Tags").Clear(); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(post).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// CreateComment 对已有文章发表评论
func CreateComment(postID, userID uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("comment: %w", ErrValidation)
	}

	post, err := GetPost(postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: &userID,
		Body:   body,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComment 按 ID 取评论
func GetComment(commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

// DeleteComment 删除评论及其点赞，父文章不受影响。
// 返回所属文章 ID 供跳转使用。
func DeleteComment(commentID uint) (uint, error) {
	comment, err := GetComment(commentID)
	if err != nil {
		return 0, err
	}

	tx := db.DB.Begin()
	if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentLike{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Delete(comment).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return comment.PostID, nil
}

// PostComments 文章的评论列表，最新在前，带 Rating 注解
func PostComments(postID uint) []models.Comment {
	var comments []models.Comment
	db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments)
	FillCommentRatings(comments)
	return comments
}
