package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/LENAX/autotune/pkg/core/dataset"
	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/events"
	"github.com/LENAX/autotune/pkg/core/taskschema"
	"github.com/LENAX/autotune/pkg/hub"
	"github.com/LENAX/autotune/pkg/storage"
)

// DatasetResolver 数据集解析器（对外导出）
// 决定数据集来源（显式引用或工作流已绑定），未缓存时驱动拉取与摄取
type DatasetResolver struct {
	datasets storage.DatasetRepository
	hub      hub.Client
	ingester *TabularIngester
	bus      *events.Bus
	claims   *keyedClaims
}

// NewDatasetResolver 创建数据集解析器
func NewDatasetResolver(datasets storage.DatasetRepository, hubClient hub.Client, ingester *TabularIngester, bus *events.Bus) *DatasetResolver {
	return &DatasetResolver{
		datasets: datasets,
		hub:      hubClient,
		ingester: ingester,
		bus:      bus,
		claims:   newKeyedClaims(),
	}
}

// Resolve 解析数据集
// 决策表：
//
//	显式引用          -> 按(任务类型, 工作流)查找或创建Dataset，未缓存时摄取
//	无引用且工作流已有 -> 使用工作流已绑定的Dataset，不存在时校验失败
//	无引用且工作流新建 -> 校验失败 "no dataset available"
func (r *DatasetResolver) Resolve(ctx context.Context, workflowID string, created bool, reference, taskType string, mappings []taskschema.Mapping) (string, error) {
	switch {
	case reference != "":
		hubID, name, err := hub.ParseReference(reference)
		if err != nil {
			return "", err
		}

		ds, err := r.datasets.FindDatasetByWorkflowAndType(ctx, workflowID, taskType)
		if err != nil {
			return "", errs.Wrap("failed to look up dataset", err)
		}
		if ds == nil {
			ds = dataset.NewDataset(workflowID, hubID, name, taskType)
			if err := r.datasets.CreateDataset(ctx, ds); err != nil {
				return "", errs.Wrap("failed to create dataset", err)
			}
		}

		if !ds.IsCached {
			// 摄取来源始终取请求给出的引用，记录中的引用可能来自一次失败的尝试
			if err := r.cacheDataset(ctx, ds, hubID+"/"+name, mappings); err != nil {
				return "", err
			}
		}
		return ds.ID, nil

	case !created:
		// 数据集由平台生成并已绑定到工作流，复用之
		ds, err := r.datasets.FirstDatasetByWorkflow(ctx, workflowID)
		if err != nil {
			return "", errs.Wrap("failed to look up dataset", err)
		}
		if ds == nil {
			return "", errs.Validationf("no dataset associated with the workflow")
		}

		if !ds.IsCached {
			if err := r.cacheDataset(ctx, ds, ds.Reference(), mappings); err != nil {
				return "", err
			}
		}
		return ds.ID, nil

	default:
		return "", errs.Validationf("no dataset available")
	}
}

// cacheDataset 从repoID拉取远端数据集并摄取到本地缓存
// 以Dataset ID为键持有独占占用，摄取成功后标记已缓存并记录内容哈希
func (r *DatasetResolver) cacheDataset(ctx context.Context, ds *dataset.Dataset, repoID string, mappings []taskschema.Mapping) error {
	release := r.claims.Acquire(ds.ID)
	defer release()

	// 拿到独占后重读缓存状态，先行的并发调用可能已完成摄取
	current, err := r.datasets.GetDatasetByID(ctx, ds.ID)
	if err != nil {
		return errs.Wrap("failed to re-check dataset", err)
	}
	if current != nil && current.IsCached {
		return nil
	}

	log.Printf("dataset %s not in the local cache, caching from %s", ds.ID, repoID)

	exists, err := r.hub.RepoExists(ctx, repoID)
	if err != nil {
		return errs.Wrap("failed to check remote repository", err)
	}
	if !exists {
		return errs.NotFoundf("dataset not found")
	}

	info, err := r.hub.RepoInfo(ctx, repoID)
	if err != nil {
		return errs.Wrap("failed to fetch repository info", err)
	}

	files, err := r.hub.ListRepoFiles(ctx, repoID)
	if err != nil {
		return errs.Wrap("failed to list repository files", err)
	}

	csvNames := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f, ".csv") {
			csvNames = append(csvNames, f)
		}
	}
	if len(csvNames) == 0 {
		return errs.Validationf("no tabular files found in dataset %s", repoID)
	}

	localPaths := make([]string, 0, len(csvNames))
	for _, name := range csvNames {
		path, err := r.hub.Download(ctx, repoID, name)
		if err != nil {
			return errs.Wrap("failed to download "+name, err)
		}
		localPaths = append(localPaths, path)
	}

	count, err := r.ingester.Ingest(ctx, ds, mappings, localPaths)
	if err != nil {
		failure := dataset.NewEvent(dataset.EventIngestFailed, ds.WorkflowID)
		failure.DatasetID = ds.ID
		failure.TaskType = ds.TaskType
		failure.Error = err.Error()
		if pubErr := r.bus.Publish(string(dataset.EventIngestFailed), failure); pubErr != nil {
			log.Printf("failed to publish ingest_failed event: %v", pubErr)
		}
		return err
	}

	// 所有文件摄取成功后才标记缓存并记录内容哈希
	if err := r.datasets.MarkDatasetCached(ctx, ds.ID, info.Sha); err != nil {
		return errs.Wrap("failed to mark dataset cached", err)
	}
	ds.IsCached = true
	ds.LatestCommitHash = info.Sha

	event := dataset.NewEvent(dataset.EventCached, ds.WorkflowID)
	event.DatasetID = ds.ID
	event.TaskType = ds.TaskType
	event.RowCount = count
	if err := r.bus.Publish(string(dataset.EventCached), event); err != nil {
		log.Printf("failed to publish dataset.cached event: %v", err)
	}

	log.Printf("cached dataset %s (%d rows, commit %s)", ds.ID, count, info.Sha)
	return nil
}
