package services

import (
	"errors"
	"fmt"
	"strings"

	"devflow/internal/db"
	"devflow/internal/models"

	"gorm.io/gorm"
)

// TagsCreator 将 "#go#web dev#gin" 形式的标签串解析为 Tag 记录。
// 先去掉所有空格再按 # 切分（首字符约定为 #，直接丢弃），
// 每个标签按标题全等匹配复用已有记录，没有则即时创建。
// 对同一标题重复调用不会产生重复行。
func TagsCreator(input string) ([]models.Tag, error) {
	cleaned := strings.ReplaceAll(input, " ", "")
	if len(cleaned) < 2 {
		return nil, fmt.Errorf("tags %q: %w", input, ErrValidation)
	}

	tags := make([]models.Tag, 0, 4)
	for _, title := range strings.Split(cleaned[1:], "#") {
		if title == "" {
			continue
		}
		var tag models.Tag
		err := db.DB.Where("title = ?", title).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Title: title}
			if err := db.DB.Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("tags %q: %w", input, ErrValidation)
	}
	return tags, nil
}

// TagsToString 是 TagsCreator 的逆操作，用于回填编辑表单。
// 按标签的关联顺序拼成 "#a #b #c"，空集合返回空串。
func TagsToString(tags []models.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	titles := make([]string, len(tags))
	for i, tag := range tags {
		titles[i] = tag.Title
	}
	return "#" + strings.Join(titles, " #")
}
