package storage

import (
	"context"

	"github.com/LENAX/autotune/pkg/core/workflow"
)

// WorkflowRepository Workflow存储接口（对外导出）
type WorkflowRepository interface {
	// CreateWorkflow 创建Workflow
	CreateWorkflow(ctx context.Context, wf *workflow.Workflow) error
	// GetWorkflowByID 根据ID查询Workflow，不存在时返回(nil, nil)
	GetWorkflowByID(ctx context.Context, id string) (*workflow.Workflow, error)
	// ListWorkflowsByUser 按创建顺序列出用户的所有Workflow
	ListWorkflowsByUser(ctx context.Context, userID string) ([]*workflow.Workflow, error)
	// ListWorkflows 列出所有Workflow
	ListWorkflows(ctx context.Context) ([]*workflow.Workflow, error)
	// UpdateWorkflowStatus 更新Workflow状态
	UpdateWorkflowStatus(ctx context.Context, id string, status string) error
	// DeleteWorkflow 删除Workflow及其级联数据（幂等）
	DeleteWorkflow(ctx context.Context, id string) error
}
