// Package audit 提供已缓存数据集的定时新鲜度审计
package audit

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/LENAX/autotune/pkg/hub"
	"github.com/LENAX/autotune/pkg/storage"
)

// Auditor 数据集新鲜度审计器（对外导出）
// 定期将已缓存数据集的内容哈希与hub端最新提交比对，发现偏离时仅记录日志
type Auditor struct {
	datasets storage.DatasetRepository
	hub      hub.Client
	cron     *cron.Cron
	expr     string
}

// NewAuditor 创建审计器
func NewAuditor(datasets storage.DatasetRepository, hubClient hub.Client, cronExpr string) *Auditor {
	if cronExpr == "" {
		cronExpr = "@hourly"
	}
	return &Auditor{
		datasets: datasets,
		hub:      hubClient,
		cron:     cron.New(),
		expr:     cronExpr,
	}
}

// Start 启动定时审计
func (a *Auditor) Start() error {
	_, err := a.cron.AddFunc(a.expr, func() {
		if err := a.RunOnce(context.Background()); err != nil {
			log.Printf("[Audit] 审计运行失败: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("添加审计任务失败: %w", err)
	}

	a.cron.Start()
	log.Printf("[Audit] 已启动数据集新鲜度审计, cron=%s", a.expr)
	return nil
}

// Stop 停止定时审计，等待进行中的审计结束
func (a *Auditor) Stop() {
	ctx := a.cron.Stop()
	<-ctx.Done()
	log.Println("[Audit] 数据集新鲜度审计已停止")
}

// RunOnce 执行一轮审计
// 只比对并记录，绝不触发重新摄取
func (a *Auditor) RunOnce(ctx context.Context) error {
	cached, err := a.datasets.ListCachedDatasets(ctx)
	if err != nil {
		return fmt.Errorf("查询已缓存数据集失败: %w", err)
	}

	stale := 0
	for _, ds := range cached {
		info, err := a.hub.RepoInfo(ctx, ds.Reference())
		if err != nil {
			log.Printf("[Audit] 获取 %s 远端信息失败: %v", ds.Reference(), err)
			continue
		}

		if ds.LatestCommitHash != "" && info.Sha != "" && ds.LatestCommitHash != info.Sha {
			stale++
			log.Printf("[Audit] 数据集 %s 已过期: 本地哈希=%s 远端哈希=%s",
				ds.Reference(), ds.LatestCommitHash, info.Sha)
		}
	}

	log.Printf("[Audit] 审计完成: 共%d个已缓存数据集, %d个过期", len(cached), stale)
	return nil
}
