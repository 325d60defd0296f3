package storage

import (
	"context"

	"github.com/LENAX/autotune/pkg/core/dataset"
)

// DatasetRepository Dataset存储接口（对外导出）
type DatasetRepository interface {
	// CreateDataset 创建Dataset记录
	CreateDataset(ctx context.Context, ds *dataset.Dataset) error
	// GetDatasetByID 根据ID查询Dataset，不存在时返回(nil, nil)
	GetDatasetByID(ctx context.Context, id string) (*dataset.Dataset, error)
	// FindDatasetByWorkflowAndType 按(工作流ID, 任务类型)查询Dataset，不存在时返回(nil, nil)
	FindDatasetByWorkflowAndType(ctx context.Context, workflowID, taskType string) (*dataset.Dataset, error)
	// FirstDatasetByWorkflow 按创建顺序返回工作流的第一个Dataset，不存在时返回(nil, nil)
	FirstDatasetByWorkflow(ctx context.Context, workflowID string) (*dataset.Dataset, error)
	// MarkDatasetCached 标记Dataset已缓存并记录内容哈希
	MarkDatasetCached(ctx context.Context, id string, commitHash string) error
	// ListCachedDatasets 列出所有已缓存的Dataset
	ListCachedDatasets(ctx context.Context) ([]*dataset.Dataset, error)

	// InsertRows 在单个事务内写入一批行记录
	InsertRows(ctx context.Context, rows []*dataset.Row) error
	// ListRowsByDataset 列出Dataset的所有行记录
	ListRowsByDataset(ctx context.Context, datasetID string) ([]*dataset.Row, error)
	// CountRowsByDataset 统计Dataset的行记录数
	CountRowsByDataset(ctx context.Context, datasetID string) (int, error)
}
