package services

import (
	"log"

	"devflow/internal/db"
	"devflow/internal/models"
)

// RecordShow 记录登录用户对文章的一次浏览。
// 同一 (post, user) 只记第一次，之后的浏览不再写入；匿名浏览由调用方直接跳过。
func RecordShow(postID, userID uint) {
	var count int64
	db.DB.Model(&models.PostShow{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count)
	if count > 0 {
		return
	}

	show := models.PostShow{
		PostID: postID,
		UserID: &userID,
	}
	if err := db.DB.Create(&show).Error; err != nil {
		log.Printf("Failed to record show for post %d: %v", postID, err)
	}
}

// ShowCount 文章的浏览记录数
func ShowCount(postID uint) int64 {
	var count int64
	db.DB.Model(&models.PostShow{}).Where("post_id = ?", postID).Count(&count)
	return count
}
