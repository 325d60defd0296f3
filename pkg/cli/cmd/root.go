package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// 全局变量
	configPath string
	outputJSON bool
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "autotune",
	Short: "Autotune CLI - ML工作流后端命令行工具",
	Long: `Autotune CLI 是一个用于管理ML训练工作流与数据集缓存的命令行工具。

支持的功能：
  - 启动HTTP API服务
  - 查看Workflow
  - 查看已缓存的数据集
  - 执行数据集新鲜度审计

使用示例：
  # 启动HTTP服务
  autotune server start --port 8080

  # 列出所有Workflow
  autotune workflow list

  # 列出已缓存的数据集
  autotune dataset list

  # 手动执行一轮数据集审计
  autotune dataset audit`,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "使用JSON格式输出")

	// 添加子命令
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(workflowCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(versionCmd)
}
