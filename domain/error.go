package domain

import "errors"

// 存储层与业务层共享的错误类型
var (
	// ErrNotFound 更新/删除的目标ID不存在
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicate 实体已存在（如重复好友请求、重复点赞）
	ErrDuplicate = errors.New("entity already exists")
	// ErrValidation 参数校验失败（评分越界、评论为空等）
	ErrValidation = errors.New("validation failed")
	// ErrAuthRequired 操作需要已登录用户
	ErrAuthRequired = errors.New("authentication required")
	// ErrExternalProvider 外部专辑搜索服务调用失败
	ErrExternalProvider = errors.New("external provider request failed")
)
