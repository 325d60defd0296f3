package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{
		Mode:     "dev",
		HTTPPort: 8080,
	}
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = "./autotune.db"
	cfg.Hub.BaseURL = "https://huggingface.co"
	cfg.Hub.ScratchDir = os.TempDir()
	cfg.Cache.IdentityTTLSeconds = 3600
	cfg.Audit.CronExpr = "@hourly"
	return cfg
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(path)
	if err != nil {
		// 若文件不存在，返回默认配置
		return Default(), nil
	}

	// 解析YAML，缺省值先填充默认
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
