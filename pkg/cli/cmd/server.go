package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LENAX/autotune/pkg/api"
	"github.com/LENAX/autotune/pkg/audit"
	"github.com/LENAX/autotune/pkg/cli/output"
	"github.com/LENAX/autotune/pkg/core/events"
	"github.com/LENAX/autotune/pkg/core/pipeline"
	"github.com/LENAX/autotune/pkg/core/taskschema"
	"github.com/LENAX/autotune/pkg/hub"
)

var (
	serverPort int
	serverHost string
)

// serverCmd server子命令
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "服务管理命令",
	Long:  `管理Autotune HTTP API服务。`,
}

// serverStartCmd 启动服务
var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "启动HTTP API服务",
	Long: `启动Autotune HTTP API服务。

示例：
  # 使用默认配置启动
  autotune server start

  # 指定端口启动
  autotune server start --port 8080

  # 指定配置文件启动
  autotune server start --config ./configs/autotune.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			output.Error("加载配置失败: %v", err)
			return err
		}
		if serverPort != 0 {
			cfg.HTTPPort = serverPort
		}

		// 打开存储
		store, err := openStore(cfg)
		if err != nil {
			output.Error("打开存储失败: %v", err)
			return err
		}
		defer store.Close()

		// 组装管线依赖
		bus := events.NewBus()
		defer bus.Close()

		hubClient := hub.NewHTTPClient(cfg.Hub.BaseURL, cfg.Hub.Token, cfg.Hub.ScratchDir)
		identities := pipeline.NewIdentityCache(store, time.Duration(cfg.Cache.IdentityTTLSeconds)*time.Second)
		p := pipeline.New(store, hubClient, taskschema.NewRegistry(), bus, identities)

		// 数据集新鲜度审计
		var auditor *audit.Auditor
		if cfg.Audit.Enabled {
			auditor = audit.NewAuditor(store, hubClient, cfg.Audit.CronExpr)
			if err := auditor.Start(); err != nil {
				output.Error("启动审计失败: %v", err)
				return err
			}
		}

		// 创建并启动API服务器
		serverConfig := api.ServerConfig{
			Host:         serverHost,
			Port:         cfg.HTTPPort,
			ReadTimeout:  api.DefaultServerConfig().ReadTimeout,
			WriteTimeout: api.DefaultServerConfig().WriteTimeout,
		}
		apiServer := api.NewAPIServer(p, store, serverConfig, Version)

		// 在goroutine中启动服务器
		go func() {
			if err := apiServer.Start(); err != nil {
				log.Printf("API服务器错误: %v", err)
			}
		}()

		output.Success("Autotune Server started on %s:%d", serverHost, cfg.HTTPPort)

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		output.Info("正在关闭服务...")

		// 优雅关闭
		shutdownCtx, cancel := context.WithTimeout(context.Background(), api.DefaultServerConfig().WriteTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			output.Error("关闭API服务器失败: %v", err)
		}

		if auditor != nil {
			auditor.Stop()
		}

		output.Success("服务已停止")
		return nil
	},
}

func init() {
	serverStartCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "监听端口（覆盖配置文件）")
	serverStartCmd.Flags().StringVarP(&serverHost, "host", "H", "0.0.0.0", "监听地址")

	serverCmd.AddCommand(serverStartCmd)
}
