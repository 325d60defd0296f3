package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LENAX/autotune/pkg/core/identity"
	"github.com/LENAX/autotune/pkg/storage/dao"
)

// GetUser 根据ID查询用户
func (s *Store) GetUser(ctx context.Context, id string) (*identity.User, error) {
	var userDAO dao.UserDAO
	query := s.db.Rebind(`SELECT id, role, is_active, create_time FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &userDAO, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	return &identity.User{
		ID:         userDAO.ID,
		Role:       userDAO.Role,
		IsActive:   userDAO.IsActive,
		CreateTime: userDAO.CreateTime,
	}, nil
}

// CreateUser 创建用户
func (s *Store) CreateUser(ctx context.Context, user *identity.User) error {
	userDAO := &dao.UserDAO{
		ID:         user.ID,
		Role:       user.Role,
		IsActive:   user.IsActive,
		CreateTime: user.CreateTime,
	}

	query := `
	INSERT INTO users (id, role, is_active, create_time)
	VALUES (:id, :role, :is_active, :create_time)
	`
	if _, err := s.db.NamedExecContext(ctx, query, userDAO); err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}

	return nil
}
