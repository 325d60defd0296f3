package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/LENAX/autotune/pkg/storage"
)

// Dialect PostgreSQL方言实现（对外导出）
type Dialect struct{}

// Name 返回方言名称
func (Dialect) Name() string { return "postgres" }

// DriverName 返回驱动名称
func (Dialect) DriverName() string { return "postgres" }

// ConfigureDB PostgreSQL无需额外连接配置
func (Dialect) ConfigureDB() []string { return nil }

// BooleanType 返回布尔类型
func (Dialect) BooleanType() string { return "BOOLEAN" }

// TextType 返回文本类型
func (Dialect) TextType() string { return "TEXT" }

// TimestampType 返回时间戳类型
func (Dialect) TimestampType() string { return "TIMESTAMP" }

// CreateIndexSQL 返回创建索引的DDL语句
func (Dialect) CreateIndexSQL(name, table, columns string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s);", name, table, columns)
}

// DSN 构造PostgreSQL连接串
func DSN(user, password, host string, port int, dbName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbName)
}

// Open 打开PostgreSQL数据库连接
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
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
