package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/LENAX/autotune/pkg/cli/output"
)

// workflowCmd workflow子命令
var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Workflow管理命令",
	Long:  `查看数据库中的Workflow。`,
}

// workflowListCmd 列出Workflow
var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出所有Workflow",
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

		workflows, err := store.ListWorkflows(context.Background())
		if err != nil {
			output.Error("查询Workflow失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(workflows)
		}

		table := output.NewTable([]string{"ID", "USER", "TYPE", "NAME", "STATUS", "CREATED"})
		for _, wf := range workflows {
			table.AddRow([]string{
				wf.ID,
				wf.UserID,
				wf.Type,
				wf.Name,
				wf.Status,
				wf.CreateTime.Format(time.RFC3339),
			})
		}
		table.Render()
		output.Info("共 %d 个Workflow", len(workflows))
		return nil
	},
}

func init() {
	workflowCmd.AddCommand(workflowListCmd)
}
