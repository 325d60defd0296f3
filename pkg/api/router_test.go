package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LENAX/autotune/pkg/api/dto"
	"github.com/LENAX/autotune/pkg/core/events"
	"github.com/LENAX/autotune/pkg/core/pipeline"
	"github.com/LENAX/autotune/pkg/core/taskschema"
	"github.com/LENAX/autotune/pkg/core/workflow"
	"github.com/LENAX/autotune/pkg/hub"
	"github.com/LENAX/autotune/pkg/storage/sqldb"
	"github.com/LENAX/autotune/pkg/storage/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubHub 测试用hub客户端，从本地目录提供文件
type stubHub struct {
	sha   string
	files map[string]string // 文件名 -> 本地路径
}

func (h *stubHub) RepoExists(ctx context.Context, repoID string) (bool, error) {
	return len(h.files) > 0, nil
}

func (h *stubHub) RepoInfo(ctx context.Context, repoID string) (*hub.RepoInfo, error) {
	return &hub.RepoInfo{Sha: h.sha}, nil
}

func (h *stubHub) ListRepoFiles(ctx context.Context, repoID string) ([]string, error) {
	names := make([]string, 0, len(h.files))
	for name := range h.files {
		names = append(names, name)
	}
	return names, nil
}

func (h *stubHub) Download(ctx context.Context, repoID string, filename string) (string, error) {
	return h.files[filename], nil
}

var _ hub.Client = (*stubHub)(nil)

// setupAPI 组装完整API路由
func setupAPI(t *testing.T) (*gin.Engine, *sqldb.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "api_test.db")
	db, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	store, err := sqldb.NewStore(db, sqlite.Dialect{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	csvPath := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("prompt,response\nhello,world\n"), 0644))

	hubClient := &stubHub{sha: "deadbeef", files: map[string]string{"train.csv": csvPath}}

	bus := events.NewBus()
	t.Cleanup(func() { bus.Close() })

	identities := pipeline.NewIdentityCache(store, time.Hour)
	p := pipeline.New(store, hubClient, taskschema.NewRegistry(), bus, identities)

	return SetupRouter(p, store, "test"), store
}

// doRequest 发送请求并返回响应记录器
func doRequest(router *gin.Engine, method, target, userID, role string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		req.Header.Set("User-Id", userID)
	}
	if role != "" {
		req.Header.Set("Role", role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router, _ := setupAPI(t)

	w := doRequest(router, http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestRouter_Identity(t *testing.T) {
	router, _ := setupAPI(t)

	t.Run("缺少User-Id返回401", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/workflows", "", "admin", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "user ID must be provided", resp.Error)
	})

	t.Run("非法User-Id返回401", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/workflows", "not-a-uuid", "admin", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid user ID format", resp.Error)
	})

	t.Run("缺少Role返回401", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/workflows", uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_CreateWorkflow(t *testing.T) {
	router, store := setupAPI(t)
	userID := uuid.NewString()

	t.Run("创建工作流并缓存数据集", func(t *testing.T) {
		form := url.Values{"task_type": {"chat"}, "dataset": {"org/demo"}}
		w := doRequest(router, http.MethodPost, "/api/v1/workflows", userID, "admin", form)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.ResolveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.WorkflowCreated)
		assert.Equal(t, "training_chat", resp.Workflow.Name)
		assert.NotEmpty(t, resp.DatasetID)

		ds, err := store.GetDatasetByID(context.Background(), resp.DatasetID)
		require.NoError(t, err)
		require.NotNil(t, ds)
		assert.True(t, ds.IsCached)
		assert.Equal(t, "deadbeef", ds.LatestCommitHash)
	})

	t.Run("重复创建复用工作流", func(t *testing.T) {
		form := url.Values{"task_type": {"chat"}, "dataset": {"org/demo"}}
		w := doRequest(router, http.MethodPost, "/api/v1/workflows", userID, "admin", form)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ResolveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.WorkflowCreated)
	})

	t.Run("未知任务类型返回400", func(t *testing.T) {
		form := url.Values{"task_type": {"nonexistent"}, "dataset": {"org/demo"}}
		w := doRequest(router, http.MethodPost, "/api/v1/workflows", userID, "admin", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "unknown task type")
	})

	t.Run("无数据集引用且工作流新建返回400", func(t *testing.T) {
		form := url.Values{"task_type": {"seq2seq"}}
		w := doRequest(router, http.MethodPost, "/api/v1/workflows", userID, "admin", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "no dataset available", resp.Error)
	})
}

func TestRouter_Data(t *testing.T) {
	router, _ := setupAPI(t)
	userID := uuid.NewString()

	// 先通过创建接口缓存数据集
	form := url.Values{"task_type": {"chat"}, "dataset": {"org/demo"}}
	w := doRequest(router, http.MethodPost, "/api/v1/workflows", userID, "admin", form)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("返回已摄取的数据行", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/data?task_type=chat&dataset=org/demo", userID, "admin", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.DataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "hello", resp.Rows[0].Fields["input"])
		assert.Equal(t, "world", resp.Rows[0].Fields["output"])
	})
}

func TestRouter_WorkflowCRUD(t *testing.T) {
	router, store := setupAPI(t)
	userID := uuid.NewString()
	otherID := uuid.NewString()

	// 建立一个工作流
	form := url.Values{"task_type": {"chat"}, "dataset": {"org/demo"}}
	w := doRequest(router, http.MethodPost, "/api/v1/workflows", userID, "admin", form)
	require.Equal(t, http.StatusOK, w.Code)

	var created dto.ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	wfID := created.Workflow.ID

	t.Run("列出当前用户的工作流", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/workflows", userID, "admin", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ListResponse[dto.WorkflowSummary]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, wfID, resp.Items[0].ID)
	})

	t.Run("他人的工作流视为不存在", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/workflows/"+wfID, otherID, "admin", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("更新状态", func(t *testing.T) {
		body := strings.NewReader(`{"status":"TRAINING"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/workflows/"+wfID+"/status", body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Id", userID)
		req.Header.Set("Role", "admin")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		stored, err := store.GetWorkflowByID(context.Background(), wfID)
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusTraining, stored.Status)
	})

	t.Run("非法状态返回400", func(t *testing.T) {
		body := strings.NewReader(`{"status":"BOGUS"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/workflows/"+wfID+"/status", body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Id", userID)
		req.Header.Set("Role", "admin")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("删除工作流", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/api/v1/workflows/"+wfID, userID, "admin", nil)
		require.Equal(t, http.StatusOK, w.Code)

		stored, err := store.GetWorkflowByID(context.Background(), wfID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}
