package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/LENAX/autotune/pkg/storage"
)

// Dialect SQLite方言实现（对外导出）
type Dialect struct{}

// Name 返回方言名称
func (Dialect) Name() string { return "sqlite" }

// DriverName 返回驱动名称
func (Dialect) DriverName() string { return "sqlite3" }

// ConfigureDB 返回SQLite优化配置
func (Dialect) ConfigureDB() []string {
	return []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=30000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
}

// BooleanType 返回布尔类型
func (Dialect) BooleanType() string { return "INTEGER" }

// TextType 返回文本类型
func (Dialect) TextType() string { return "TEXT" }

// TimestampType 返回时间戳类型
func (Dialect) TimestampType() string { return "DATETIME" }

// CreateIndexSQL 返回创建索引的DDL语句
func (Dialect) CreateIndexSQL(name, table, columns string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s);", name, table, columns)
}

// Open 打开SQLite数据库连接
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	return db, nil
}

// 确保 Dialect 实现 storage.Dialect 接口
var _ storage.Dialect = Dialect{}
