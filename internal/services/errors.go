package services

import (
	"errors"
)

var (
	// ErrNotFound 引用的文章/评论/标签不存在
	ErrNotFound = errors.New("record not found")
	// ErrValidation 必填字段为空或格式不合法
	ErrValidation = errors.New("validation failed")
	// ErrInvalidWindow 未知的时间筛选模式
	ErrInvalidWindow = errors.New("invalid date window")
)
