package dataset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dataset 数据集缓存记录（对外导出）
// 表示绑定到一个工作流和任务类型的远端表格数据集
// 正常情况下每个(工作流, 任务类型)组合至多存在一条记录
type Dataset struct {
	ID               string    `json:"id"`
	WorkflowID       string    `json:"workflow_id"`
	HubID            string    `json:"hub_id"`
	Name             string    `json:"name"`
	TaskType         string    `json:"type"`
	IsCached         bool      `json:"is_locally_cached"`
	LatestCommitHash string    `json:"latest_commit_hash"`
	CreateTime       time.Time `json:"create_time"`
}

// NewDataset 创建未缓存的Dataset记录
func NewDataset(workflowID, hubID, name, taskType string) *Dataset {
	return &Dataset{
		ID:         uuid.NewString(),
		WorkflowID: workflowID,
		HubID:      hubID,
		Name:       name,
		TaskType:   taskType,
		IsCached:   false,
		CreateTime: time.Now(),
	}
}

// Reference 返回数据集的远端引用，形如 "hubID/name"
func (d *Dataset) Reference() string {
	return fmt.Sprintf("%s/%s", d.HubID, d.Name)
}

// Row 摄取后的单行记录（对外导出）
// 按任务模式映射填充规范字段，写入后不再更新
type Row struct {
	ID         string            `json:"id"`
	DatasetID  string            `json:"dataset_id"`
	File       string            `json:"file"`
	Fields     map[string]string `json:"fields"`
	CreateTime time.Time         `json:"create_time"`
}
