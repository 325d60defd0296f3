package storage

import (
	"context"

	"github.com/LENAX/autotune/pkg/core/identity"
)

// UserRepository 用户存储接口（对外导出）
type UserRepository interface {
	// GetUser 根据ID查询用户，不存在时返回(nil, nil)
	GetUser(ctx context.Context, id string) (*identity.User, error)
	// CreateUser 创建用户
	CreateUser(ctx context.Context, user *identity.User) error
}
