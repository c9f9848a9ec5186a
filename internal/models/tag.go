package models

import (
	"time"
)

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:30;not null;index" json:"title"` // 标题不唯一，解析时按全等匹配复用
	CreatedAt time.Time `json:"created_at"`

	Posts []Post `gorm:"many2many:post_tags;" json:"-"`

	// 查询注解字段，由聚合查询填充
	PostCount int `gorm:"->;-:migration;column:post_count" json:"post_count"`
}
