// Package storage 提供按配置选择数据库方言的存储工厂
package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LENAX/autotune/pkg/config"
	"github.com/LENAX/autotune/pkg/storage/mysql"
	"github.com/LENAX/autotune/pkg/storage/postgres"
	"github.com/LENAX/autotune/pkg/storage/sqldb"
	"github.com/LENAX/autotune/pkg/storage/sqlite"
)

// NewStore 按配置创建存储实例
func NewStore(cfg *config.Config) (*sqldb.Store, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Database.Type {
	case "sqlite":
		db, err = sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return sqldb.NewStore(db, sqlite.Dialect{})

	case "mysql":
		dsn := mysql.DSN(cfg.Database.User, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		db, err = mysql.Open(dsn)
		if err != nil {
			return nil, err
		}
		return sqldb.NewStore(db, mysql.Dialect{})

	case "postgres":
		dsn := postgres.DSN(cfg.Database.User, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		db, err = postgres.Open(dsn)
		if err != nil {
			return nil, err
		}
		return sqldb.NewStore(db, postgres.Dialect{})

	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Database.Type)
	}
}
