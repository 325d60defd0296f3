package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/LENAX/autotune/pkg/core/dataset"
	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/events"
	"github.com/LENAX/autotune/pkg/core/workflow"
	"github.com/LENAX/autotune/pkg/storage"
)

// WorkflowBinder 工作流绑定器（对外导出）
// 查找用户名下绑定了给定任务类型数据集的工作流，不存在时创建训练工作流
type WorkflowBinder struct {
	workflows storage.WorkflowRepository
	datasets  storage.DatasetRepository
	bus       *events.Bus
}

// NewWorkflowBinder 创建工作流绑定器
func NewWorkflowBinder(workflows storage.WorkflowRepository, datasets storage.DatasetRepository, bus *events.Bus) *WorkflowBinder {
	return &WorkflowBinder{workflows: workflows, datasets: datasets, bus: bus}
}

// BindOrCreate 绑定或创建工作流
// 按创建顺序扫描用户的工作流，检查每个工作流的第一个数据集的任务类型，
// 首个匹配者胜出；无匹配时创建 {type:"Training", name:"training_<taskType>"}
func (b *WorkflowBinder) BindOrCreate(ctx context.Context, userID, taskType string) (workflowID string, created bool, err error) {
	workflows, err := b.workflows.ListWorkflowsByUser(ctx, userID)
	if err != nil {
		return "", false, errs.Wrap("failed to list workflows", err)
	}

	for _, wf := range workflows {
		ds, err := b.datasets.FirstDatasetByWorkflow(ctx, wf.ID)
		if err != nil {
			return "", false, errs.Wrap("failed to look up workflow dataset", err)
		}
		if ds != nil && ds.TaskType == taskType {
			log.Printf("found an existing workflow %s with task type %s for user %s", wf.ID, taskType, userID)
			return wf.ID, false, nil
		}
	}

	// 无匹配，为该任务创建训练工作流
	wf := workflow.NewWorkflow(userID, "Training", fmt.Sprintf("training_%s", taskType))
	if err := b.workflows.CreateWorkflow(ctx, wf); err != nil {
		return "", false, errs.Wrap("failed to create workflow", err)
	}
	log.Printf("created workflow %s for task type %s", wf.ID, taskType)

	event := dataset.NewEvent(dataset.EventWorkflowCreated, wf.ID)
	event.TaskType = taskType
	if err := b.bus.Publish(string(dataset.EventWorkflowCreated), event); err != nil {
		// 事件发布失败不阻断主流程
		log.Printf("failed to publish workflow.created event: %v", err)
	}

	return wf.ID, true, nil
}
