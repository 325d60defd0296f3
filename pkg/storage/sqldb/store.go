// Package sqldb 提供基于sqlx的存储实现，通过方言适配SQLite/MySQL/PostgreSQL
package sqldb

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/LENAX/autotune/pkg/storage"
)

// Store 关系型存储实现（对外导出）
// 同时实现 UserRepository、WorkflowRepository、DatasetRepository
type Store struct {
	db      *sqlx.DB
	dialect storage.Dialect
}

// NewStore 创建存储实例并初始化表结构
func NewStore(db *sqlx.DB, dialect storage.Dialect) (*Store, error) {
	s := &Store{db: db, dialect: dialect}

	for _, stmt := range dialect.ConfigureDB() {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("配置数据库失败: %w", err)
		}
	}

	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("初始化表结构失败: %w", err)
	}
	return s, nil
}

// GetDB 获取底层数据库连接（对外导出）
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// Close 关闭数据库连接（对外导出）
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// initSchema 初始化数据库表结构
func (s *Store) initSchema() error {
	boolType := s.dialect.BooleanType()
	textType := s.dialect.TextType()
	tsType := s.dialect.TimestampType()

	// users表
	createUsersSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		role VARCHAR(64) NOT NULL,
		is_active %s NOT NULL,
		create_time %s NOT NULL
	);
	`, boolType, tsType)

	// workflows表
	createWorkflowsSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS workflows (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		type VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		status VARCHAR(32) NOT NULL,
		create_time %s NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);
	`, tsType)

	// datasets表
	createDatasetsSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS datasets (
		id VARCHAR(36) PRIMARY KEY,
		workflow_id VARCHAR(36) NOT NULL,
		hub_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		type VARCHAR(64) NOT NULL,
		is_locally_cached %s NOT NULL,
		latest_commit_hash VARCHAR(64),
		create_time %s NOT NULL,
		FOREIGN KEY (workflow_id) REFERENCES workflows(id) ON DELETE CASCADE
	);
	`, boolType, tsType)

	// dataset_rows表
	createRowsSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS dataset_rows (
		id VARCHAR(36) PRIMARY KEY,
		dataset_id VARCHAR(36) NOT NULL,
		file VARCHAR(255) NOT NULL,
		fields %s NOT NULL,
		create_time %s NOT NULL,
		FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
	);
	`, textType, tsType)

	for _, ddl := range []string{createUsersSQL, createWorkflowsSQL, createDatasetsSQL, createRowsSQL} {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("执行SQL失败: %w", err)
		}
	}

	indexes := []string{
		s.dialect.CreateIndexSQL("idx_workflows_user_id", "workflows", "user_id"),
		s.dialect.CreateIndexSQL("idx_datasets_workflow_type", "datasets", "workflow_id, type"),
		s.dialect.CreateIndexSQL("idx_dataset_rows_dataset_id", "dataset_rows", "dataset_id"),
	}
	for _, ddl := range indexes {
		if _, err := s.db.Exec(ddl); err != nil {
			// MySQL的CREATE INDEX不支持IF NOT EXISTS，重复创建时忽略
			if strings.Contains(err.Error(), "Duplicate key name") {
				continue
			}
			return fmt.Errorf("创建索引失败: %w", err)
		}
	}

	return nil
}

// 确保 Store 实现存储接口
var (
	_ storage.UserRepository     = (*Store)(nil)
	_ storage.WorkflowRepository = (*Store)(nil)
	_ storage.DatasetRepository  = (*Store)(nil)
)
