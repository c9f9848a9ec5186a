package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"user_id"`
	User        *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string    `gorm:"size:50;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	ContentCode string    `gorm:"type:text" json:"content_code"` // 可选的代码块
	Tags        []Tag     `gorm:"many2many:post_tags;" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	Rating       int `gorm:"-" json:"rating"`
	CommentCount int `gorm:"-" json:"comment_count"`

	// 聚合查询注解字段（如热门排序的浏览数）
	ShowCount int `gorm:"->;-:migration;column:show_count" json:"show_count"`
}
