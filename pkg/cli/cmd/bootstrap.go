package cmd

import (
	"os"

	"github.com/LENAX/autotune/internal/storage"
	"github.com/LENAX/autotune/pkg/cli/output"
	"github.com/LENAX/autotune/pkg/config"
	"github.com/LENAX/autotune/pkg/storage/sqldb"
)

// loadConfig 加载并校验配置（内部使用）
// 未指定--config时依次尝试默认路径，都不存在时使用内置默认值
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		defaultPaths := []string{
			"./configs/autotune.yaml",
			"./config/autotune.yaml",
			"./autotune.yaml",
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path != "" {
		output.Info("使用配置文件: %s", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore 按配置打开存储（内部使用）
func openStore(cfg *config.Config) (*sqldb.Store, error) {
	return storage.NewStore(cfg)
}
