package mysql

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/LENAX/autotune/pkg/storage"
)

// Dialect MySQL方言实现（对外导出）
type Dialect struct{}

// Name 返回方言名称
func (Dialect) Name() string { return "mysql" }

// DriverName 返回驱动名称
func (Dialect) DriverName() string { return "mysql" }

// ConfigureDB MySQL无需额外连接配置
func (Dialect) ConfigureDB() []string { return nil }

// BooleanType 返回布尔类型
func (Dialect) BooleanType() string { return "TINYINT(1)" }

// TextType 返回文本类型
func (Dialect) TextType() string { return "TEXT" }

// TimestampType 返回时间戳类型
func (Dialect) TimestampType() string { return "DATETIME" }

// CreateIndexSQL 返回创建索引的DDL语句
// MySQL不支持IF NOT EXISTS，重复创建的错误由Store侧忽略
func (Dialect) CreateIndexSQL(name, table, columns string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s(%s);", name, table, columns)
}

// DSN 构造MySQL连接串
func DSN(user, password, host string, port int, dbName string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		user, password, host, port, dbName)
}

// Open 打开MySQL数据库连接
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
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
