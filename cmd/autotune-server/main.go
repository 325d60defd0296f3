package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LENAX/autotune/internal/storage"
	"github.com/LENAX/autotune/pkg/api"
	"github.com/LENAX/autotune/pkg/audit"
	"github.com/LENAX/autotune/pkg/config"
	"github.com/LENAX/autotune/pkg/core/events"
	"github.com/LENAX/autotune/pkg/core/pipeline"
	"github.com/LENAX/autotune/pkg/core/taskschema"
	"github.com/LENAX/autotune/pkg/hub"
)

var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	// 命令行参数
	configPath := flag.String("config", "./configs/autotune.yaml", "配置文件路径")
	host := flag.String("host", "0.0.0.0", "监听地址")
	port := flag.Int("port", 0, "监听端口（覆盖配置文件）")
	flag.Parse()

	log.Printf("Autotune Server v%s", Version)
	log.Printf("配置文件: %s", *configPath)

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *port != 0 {
		cfg.HTTPPort = *port
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("配置校验失败: %v", err)
	}

	// 2. 打开存储
	store, err := storage.NewStore(cfg)
	if err != nil {
		log.Fatalf("打开存储失败: %v", err)
	}
	defer store.Close()

	// 3. 组装数据集缓存管线
	bus := events.NewBus()
	defer bus.Close()

	hubClient := hub.NewHTTPClient(cfg.Hub.BaseURL, cfg.Hub.Token, cfg.Hub.ScratchDir)
	identities := pipeline.NewIdentityCache(store, time.Duration(cfg.Cache.IdentityTTLSeconds)*time.Second)
	p := pipeline.New(store, hubClient, taskschema.NewRegistry(), bus, identities)

	// 4. 启动数据集新鲜度审计
	var auditor *audit.Auditor
	if cfg.Audit.Enabled {
		auditor = audit.NewAuditor(store, hubClient, cfg.Audit.CronExpr)
		if err := auditor.Start(); err != nil {
			log.Fatalf("启动审计失败: %v", err)
		}
	}

	// 5. 创建API服务器
	serverConfig := api.ServerConfig{
		Host:         *host,
		Port:         cfg.HTTPPort,
		ReadTimeout:  api.DefaultServerConfig().ReadTimeout,
		WriteTimeout: api.DefaultServerConfig().WriteTimeout,
	}

	apiServer := api.NewAPIServer(p, store, serverConfig, Version)

	// 6. 在goroutine中启动API服务器
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Printf("API服务器错误: %v", err)
		}
	}()

	log.Printf("✅ Autotune Server started on %s:%d", *host, cfg.HTTPPort)

	// 7. 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 8. 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), api.DefaultServerConfig().WriteTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭API服务器失败: %v", err)
	}

	if auditor != nil {
		auditor.Stop()
	}

	log.Println("✅ 服务已停止")
}
