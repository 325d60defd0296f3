package cmd

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/LENAX/autotune/pkg/audit"
	"github.com/LENAX/autotune/pkg/cli/output"
	"github.com/LENAX/autotune/pkg/hub"
)

// datasetCmd dataset子命令
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "数据集管理命令",
	Long:  `查看已缓存的数据集并执行新鲜度审计。`,
}

// datasetListCmd 列出已缓存的数据集
var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出已缓存的数据集",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			output.Error("加载配置失败: %v", err)
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			output.Error("打开存储失败: %v", err)
			return err
		}
		defer store.Close()

		ctx := context.Background()
		datasets, err := store.ListCachedDatasets(ctx)
		if err != nil {
			output.Error("查询数据集失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(datasets)
		}

		table := output.NewTable([]string{"ID", "REFERENCE", "TASK TYPE", "ROWS", "COMMIT", "CREATED"})
		for _, ds := range datasets {
			count, err := store.CountRowsByDataset(ctx, ds.ID)
			if err != nil {
				output.Warning("统计 %s 行数失败: %v", ds.ID, err)
			}
			table.AddRow([]string{
				ds.ID,
				ds.Reference(),
				ds.TaskType,
				strconv.Itoa(count),
				ds.LatestCommitHash,
				ds.CreateTime.Format(time.RFC3339),
			})
		}
		table.Render()
		output.Info("共 %d 个已缓存数据集", len(datasets))
		return nil
	},
}

// datasetAuditCmd 手动执行一轮新鲜度审计
var datasetAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "执行一轮数据集新鲜度审计",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			output.Error("加载配置失败: %v", err)
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			output.Error("打开存储失败: %v", err)
			return err
		}
		defer store.Close()

		hubClient := hub.NewHTTPClient(cfg.Hub.BaseURL, cfg.Hub.Token, cfg.Hub.ScratchDir)
		auditor := audit.NewAuditor(store, hubClient, cfg.Audit.CronExpr)

		if err := auditor.RunOnce(context.Background()); err != nil {
			output.Error("审计失败: %v", err)
			return err
		}

		output.Success("审计完成")
		return nil
	},
}

func init() {
	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetAuditCmd)
}
