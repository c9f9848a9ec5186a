package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"devflow/internal/db"
	"devflow/internal/models"

	"gorm.io/gorm"
)

// PopularLimit 首页热门榜的条数上限
const PopularLimit = 5

// 时间筛选模式，对应表单的 button 字段
const (
	WindowWeek  = "week"
	WindowMonth = "month"
	WindowTop   = "top"
)

// AllPosts 全部文章，最新在前，带 Rating 注解
func AllPosts() []models.Post {
	var posts []models.Post
	if err := db.DB.Preload("User").Preload("Tags").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		log.Printf("Failed to list posts: %v", err)
	}
	FillPostRatings(posts)
	return posts
}

// PopularPosts 按浏览数倒序取前 5 篇。
// 浏览数相同的按 posts.id 倒序，保证排序稳定。
func PopularPosts() []models.Post {
	var posts []models.Post
	if err := db.DB.Model(&models.Post{}).Preload("User").Preload("Tags").
		Select("posts.*, COUNT(post_shows.id) AS show_count").
		Joins("LEFT JOIN post_shows ON post_shows.post_id = posts.id").
		Group("posts.id").
		Order("show_count DESC, posts.id DESC").
		Limit(PopularLimit).
		Find(&posts).Error; err != nil {
		log.Printf("Failed to list popular posts: %v", err)
	}
	FillPostRatings(posts)
	return posts
}

// PostsByTag 指定标签下的文章，最新在前。标签不存在返回 ErrNotFound。
func PostsByTag(tagID uint) ([]models.Post, error) {
	var tag models.Tag
	if err := db.DB.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tag %d: %w", tagID, ErrNotFound)
		}
		return nil, err
	}

	// JOIN 会让 gorm 逐列展开 SELECT，必须限定 posts.*，
	// 否则注解字段 show_count 会被当成真实列带进查询
	var posts []models.Post
	err := db.DB.Model(&models.Post{}).Preload("User").Preload("Tags").
		Select("posts.*").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tag.ID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	FillPostRatings(posts)
	return posts, nil
}

// PostsByWindow 按时间窗口筛选：
//   - week/month 过滤 7 天 / 30 天内的文章，最新在前
//   - top 不做时间过滤，按净赞数倒序
//
// 其它取值一律视为校验失败，不做静默兜底。
func PostsByWindow(window string) ([]models.Post, error) {
	var posts []models.Post
	var err error
	switch window {
	case WindowWeek:
		err = db.DB.Preload("User").Preload("Tags").
			Where("created_at > ?", time.Now().AddDate(0, 0, -7)).
			Order("created_at DESC").
			Find(&posts).Error
	case WindowMonth:
		err = db.DB.Preload("User").Preload("Tags").
			Where("created_at > ?", time.Now().AddDate(0, 0, -30)).
			Order("created_at DESC").
			Find(&posts).Error
	case WindowTop:
		err = db.DB.Model(&models.Post{}).Preload("User").Preload("Tags").
			Select("posts.*, COALESCE(SUM(post_likes.value), 0) AS like_sum").
			Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
			Group("posts.id").
			Order("like_sum DESC, posts.id DESC").
			Find(&posts).Error
	default:
		return nil, fmt.Errorf("window %q: %w", window, ErrInvalidWindow)
	}
	if err != nil {
		return nil, err
	}
	FillPostRatings(posts)
	return posts, nil
}

// SearchPosts 按空白切分关键词，取标题或正文包含任一关键词的文章并集
// （大小写不敏感的子串匹配），最新在前。没有关键词时返回空。
func SearchPosts(query string) []models.Post {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return nil
	}

	// LOWER(...) LIKE 在 Postgres 和 sqlite 上行为一致
	clauses := make([]string, 0, len(keywords))
	args := make([]interface{}, 0, len(keywords)*2)
	for _, kw := range keywords {
		pattern := "%" + strings.ToLower(kw) + "%"
		clauses = append(clauses, "(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	var posts []models.Post
	if err := db.DB.Preload("User").Preload("Tags").
		Where(strings.Join(clauses, " OR "), args...).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		log.Printf("Failed to search posts: %v", err)
	}
	FillPostRatings(posts)
	return posts
}

// TagCloud 标签按关联文章数倒序，用于侧边栏
func TagCloud() []models.Tag {
	var tags []models.Tag
	if err := db.DB.Model(&models.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("post_count DESC, tags.id ASC").
		Find(&tags).Error; err != nil {
		log.Printf("Failed to build tag cloud: %v", err)
	}
	return tags
}

// RelatedPosts 相关文章：先取命中第一个标签的其它文章作为候选集，
// 再按后续标签逐个收窄；某次收窄会清空候选集时保留上一集合并停止。
// 没有标签的文章相关集为空。
func RelatedPosts(post *models.Post) []models.Post {
	if len(post.Tags) == 0 {
		return nil
	}

	candidates := postIDsWithTag(post.Tags[0].ID, post.ID)
	if len(candidates) == 0 {
		return nil
	}

	for _, tag := range post.Tags[1:] {
		var narrowed []uint
		db.DB.Model(&models.Post{}).
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ? AND posts.id IN ?", tag.ID, candidates).
			Pluck("posts.id", &narrowed)
		if len(narrowed) == 0 {
			break
		}
		candidates = narrowed
	}

	var posts []models.Post
	if err := db.DB.Preload("User").Preload("Tags").
		Where("id IN ?", candidates).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		log.Printf("Failed to load related posts: %v", err)
	}
	FillPostRatings(posts)
	return posts
}

// postIDsWithTag 带指定标签的文章 ID，排除 exclude 自身
func postIDsWithTag(tagID, exclude uint) []uint {
	var ids []uint
	db.DB.Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ? AND posts.id <> ?", tagID, exclude).
		Pluck("posts.id", &ids)
	return ids
}
