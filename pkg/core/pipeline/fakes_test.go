package pipeline

import (
	"context"
	"sync"

	"github.com/LENAX/autotune/pkg/core/dataset"
	"github.com/LENAX/autotune/pkg/core/identity"
	"github.com/LENAX/autotune/pkg/core/workflow"
	"github.com/LENAX/autotune/pkg/hub"
	"github.com/LENAX/autotune/pkg/storage"
)

// fakeStore 内存存储实现，同时实现三个存储接口
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*identity.User
	workflows []*workflow.Workflow
	datasets  []*dataset.Dataset
	rows      []*dataset.Row

	getUserCalls  int
	insertRowsErr error
	listCalls     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*identity.User)}
}

func (s *fakeStore) GetUser(ctx context.Context, id string) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getUserCalls++
	return s.users[id], nil
}

func (s *fakeStore) CreateUser(ctx context.Context, u *identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *fakeStore) CreateWorkflow(ctx context.Context, wf *workflow.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows = append(s.workflows, wf)
	return nil
}

func (s *fakeStore) GetWorkflowByID(ctx context.Context, id string) (*workflow.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, wf := range s.workflows {
		if wf.ID == id {
			return wf, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListWorkflowsByUser(ctx context.Context, userID string) ([]*workflow.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]*workflow.Workflow, 0)
	for _, wf := range s.workflows {
		if wf.UserID == userID {
			out = append(out, wf)
		}
	}
	return out, nil
}

func (s *fakeStore) ListWorkflows(ctx context.Context) ([]*workflow.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*workflow.Workflow(nil), s.workflows...), nil
}

func (s *fakeStore) UpdateWorkflowStatus(ctx context.Context, id string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, wf := range s.workflows {
		if wf.ID == id {
			wf.Status = status
		}
	}
	return nil
}

func (s *fakeStore) DeleteWorkflow(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.workflows[:0]
	for _, wf := range s.workflows {
		if wf.ID != id {
			kept = append(kept, wf)
		}
	}
	s.workflows = kept
	return nil
}

func (s *fakeStore) CreateDataset(ctx context.Context, ds *dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets = append(s.datasets, ds)
	return nil
}

// copyDataset 返回记录副本，模拟真实存储的读取语义
func copyDataset(ds *dataset.Dataset) *dataset.Dataset {
	out := *ds
	return &out
}

func (s *fakeStore) GetDatasetByID(ctx context.Context, id string) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ds := range s.datasets {
		if ds.ID == id {
			return copyDataset(ds), nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindDatasetByWorkflowAndType(ctx context.Context, workflowID, taskType string) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ds := range s.datasets {
		if ds.WorkflowID == workflowID && ds.TaskType == taskType {
			return copyDataset(ds), nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FirstDatasetByWorkflow(ctx context.Context, workflowID string) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ds := range s.datasets {
		if ds.WorkflowID == workflowID {
			return copyDataset(ds), nil
		}
	}
	return nil, nil
}

func (s *fakeStore) MarkDatasetCached(ctx context.Context, id string, commitHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ds := range s.datasets {
		if ds.ID == id {
			ds.IsCached = true
			ds.LatestCommitHash = commitHash
		}
	}
	return nil
}

func (s *fakeStore) ListCachedDatasets(ctx context.Context) ([]*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*dataset.Dataset, 0)
	for _, ds := range s.datasets {
		if ds.IsCached {
			out = append(out, copyDataset(ds))
		}
	}
	return out, nil
}

func (s *fakeStore) InsertRows(ctx context.Context, rows []*dataset.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertRowsErr != nil {
		return s.insertRowsErr
	}
	s.rows = append(s.rows, rows...)
	return nil
}

func (s *fakeStore) ListRowsByDataset(ctx context.Context, datasetID string) ([]*dataset.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*dataset.Row, 0)
	for _, row := range s.rows {
		if row.DatasetID == datasetID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) CountRowsByDataset(ctx context.Context, datasetID string) (int, error) {
	rows, _ := s.ListRowsByDataset(ctx, datasetID)
	return len(rows), nil
}

// 确保 fakeStore 覆盖全部存储接口
var (
	_ storage.UserRepository     = (*fakeStore)(nil)
	_ storage.WorkflowRepository = (*fakeStore)(nil)
	_ storage.DatasetRepository  = (*fakeStore)(nil)
)

// fakeHub 内存hub客户端实现
type fakeHub struct {
	mu        sync.Mutex
	exists    bool
	sha       string
	files     []string
	downloads map[string]string // 文件名 -> 本地路径

	existsCalls   int
	existsRepos   []string
	downloadCalls int
}

func newFakeHub() *fakeHub {
	return &fakeHub{exists: true, sha: "abc123", downloads: make(map[string]string)}
}

func (h *fakeHub) RepoExists(ctx context.Context, repoID string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.existsCalls++
	h.existsRepos = append(h.existsRepos, repoID)
	return h.exists, nil
}

func (h *fakeHub) RepoInfo(ctx context.Context, repoID string) (*hub.RepoInfo, error) {
	return &hub.RepoInfo{Sha: h.sha}, nil
}

func (h *fakeHub) ListRepoFiles(ctx context.Context, repoID string) ([]string, error) {
	return h.files, nil
}

func (h *fakeHub) Download(ctx context.Context, repoID string, filename string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.downloadCalls++
	return h.downloads[filename], nil
}

var _ hub.Client = (*fakeHub)(nil)
