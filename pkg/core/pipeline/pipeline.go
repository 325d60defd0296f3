// Package pipeline 实现数据集缓存同步管线：
// 身份解析 -> 工作流绑定 -> 任务模式校验 -> 数据集解析与摄取
package pipeline

import (
	"context"

	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/events"
	"github.com/LENAX/autotune/pkg/core/taskschema"
	"github.com/LENAX/autotune/pkg/hub"
	"github.com/LENAX/autotune/pkg/storage"
)

// Repositories 管线依赖的存储接口集合（对外导出）
type Repositories interface {
	storage.UserRepository
	storage.WorkflowRepository
	storage.DatasetRepository
}

// Pipeline 数据集缓存管线（对外导出）
type Pipeline struct {
	Identities *IdentityCache
	Schemas    *taskschema.Registry

	binder   *WorkflowBinder
	resolver *DatasetResolver
}

// Resolution 管线解析结果（对外导出）
// 附加到请求上下文，供下游操作消费
type Resolution struct {
	WorkflowID      string
	DatasetID       string
	WorkflowCreated bool
}

// New 创建数据集缓存管线
func New(repos Repositories, hubClient hub.Client, schemas *taskschema.Registry, bus *events.Bus, identities *IdentityCache) *Pipeline {
	ingester := NewTabularIngester(repos)
	return &Pipeline{
		Identities: identities,
		Schemas:    schemas,
		binder:     NewWorkflowBinder(repos, repos, bus),
		resolver:   NewDatasetResolver(repos, hubClient, ingester, bus),
	}
}

// Resolve 运行管线：绑定工作流、校验任务模式、解析数据集
// 任务类型未注册时在任何网络或存储访问之前失败
func (p *Pipeline) Resolve(ctx context.Context, userID, taskType, reference string) (*Resolution, error) {
	mappings, ok := p.Schemas.Lookup(taskType)
	if !ok {
		return nil, errs.Validationf("unknown task type %q, please give a valid task type", taskType)
	}

	workflowID, created, err := p.binder.BindOrCreate(ctx, userID, taskType)
	if err != nil {
		return nil, err
	}

	datasetID, err := p.resolver.Resolve(ctx, workflowID, created, reference, taskType, mappings)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		WorkflowID:      workflowID,
		DatasetID:       datasetID,
		WorkflowCreated: created,
	}, nil
}
