package storage

// Dialect SQL方言接口（对外导出）
// 封装不同数据库的DDL语法差异
type Dialect interface {
	// Name 返回方言名称（如 "sqlite", "mysql", "postgres"）
	Name() string

	// DriverName 返回database/sql驱动名称
	DriverName() string

	// ConfigureDB 配置数据库连接（如SQLite的PRAGMA）
	// 返回需要执行的SQL语句列表
	ConfigureDB() []string

	// BooleanType 返回布尔类型
	// SQLite: INTEGER
	// MySQL: TINYINT(1)
	// PostgreSQL: BOOLEAN
	BooleanType() string

	// TextType 返回文本类型
	TextType() string

	// TimestampType 返回时间戳类型
	// SQLite/MySQL: DATETIME
	// PostgreSQL: TIMESTAMP
	TimestampType() string

	// CreateIndexSQL 返回创建索引的DDL语句
	// SQLite/PostgreSQL支持IF NOT EXISTS，MySQL不支持
	CreateIndexSQL(name, table, columns string) string
}
