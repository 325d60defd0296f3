package config

import "fmt"

// Validate 校验配置
func Validate(cfg *Config) error {
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return fmt.Errorf("无效的HTTP端口: %d", cfg.HTTPPort)
	}

	switch cfg.Database.Type {
	case "sqlite":
		if cfg.Database.Path == "" {
			return fmt.Errorf("sqlite数据库需要指定path")
		}
	case "mysql", "postgres":
		if cfg.Database.Host == "" || cfg.Database.DBName == "" {
			return fmt.Errorf("%s数据库需要指定host和dbname", cfg.Database.Type)
		}
	default:
		return fmt.Errorf("不支持的数据库类型: %s", cfg.Database.Type)
	}

	if cfg.Hub.BaseURL == "" {
		return fmt.Errorf("hub服务地址不能为空")
	}

	if cfg.Cache.IdentityTTLSeconds < 0 {
		return fmt.Errorf("身份缓存TTL不能为负数")
	}

	return nil
}
