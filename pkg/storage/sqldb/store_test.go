package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LENAX/autotune/pkg/core/dataset"
	"github.com/LENAX/autotune/pkg/core/identity"
	"github.com/LENAX/autotune/pkg/core/workflow"
	"github.com/LENAX/autotune/pkg/storage/sqlite"
)

// setupStore 创建临时SQLite存储
func setupStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "autotune_test.db")
	db, err := sqlite.Open(dbPath)
	require.NoError(t, err, "创建测试数据库失败")

	store, err := NewStore(db, sqlite.Dialect{})
	require.NoError(t, err, "初始化存储失败")
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStore_Users(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	t.Run("不存在的用户返回nil", func(t *testing.T) {
		user, err := store.GetUser(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("创建并查询用户", func(t *testing.T) {
		user := &identity.User{
			ID:         "u-1",
			Role:       "admin",
			IsActive:   true,
			CreateTime: time.Now(),
		}
		require.NoError(t, store.CreateUser(ctx, user))

		stored, err := store.GetUser(ctx, "u-1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "admin", stored.Role)
		assert.True(t, stored.IsActive)
	})
}

func TestStore_Workflows(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	newWf := func(userID, name string, offset time.Duration) *workflow.Workflow {
		wf := workflow.NewWorkflow(userID, "Training", name)
		wf.CreateTime = base.Add(offset)
		return wf
	}

	t.Run("按创建顺序列出用户工作流", func(t *testing.T) {
		wf2 := newWf("u-1", "second", 2*time.Minute)
		wf1 := newWf("u-1", "first", 1*time.Minute)
		other := newWf("u-2", "other", 3*time.Minute)
		require.NoError(t, store.CreateWorkflow(ctx, wf2))
		require.NoError(t, store.CreateWorkflow(ctx, wf1))
		require.NoError(t, store.CreateWorkflow(ctx, other))

		workflows, err := store.ListWorkflowsByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, workflows, 2)
		assert.Equal(t, "first", workflows[0].Name)
		assert.Equal(t, "second", workflows[1].Name)
	})

	t.Run("更新状态", func(t *testing.T) {
		wf := newWf("u-3", "status-test", 0)
		require.NoError(t, store.CreateWorkflow(ctx, wf))

		require.NoError(t, store.UpdateWorkflowStatus(ctx, wf.ID, workflow.StatusTraining))

		stored, err := store.GetWorkflowByID(ctx, wf.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, workflow.StatusTraining, stored.Status)
	})

	t.Run("不存在的工作流返回nil", func(t *testing.T) {
		wf, err := store.GetWorkflowByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, wf)
	})

	t.Run("删除级联清理数据集和行记录", func(t *testing.T) {
		wf := newWf("u-4", "cascade-test", 0)
		require.NoError(t, store.CreateWorkflow(ctx, wf))

		ds := dataset.NewDataset(wf.ID, "org", "demo", "chat")
		require.NoError(t, store.CreateDataset(ctx, ds))
		require.NoError(t, store.InsertRows(ctx, []*dataset.Row{
			{ID: "r-1", DatasetID: ds.ID, File: "a.csv", Fields: map[string]string{"input": "x"}, CreateTime: time.Now()},
		}))

		require.NoError(t, store.DeleteWorkflow(ctx, wf.ID))

		stored, err := store.GetWorkflowByID(ctx, wf.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)

		gone, err := store.GetDatasetByID(ctx, ds.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		count, err := store.CountRowsByDataset(ctx, ds.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		// 幂等：重复删除不报错
		assert.NoError(t, store.DeleteWorkflow(ctx, wf.ID))
	})
}

func TestStore_Datasets(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	wf := workflow.NewWorkflow("u-1", "Training", "training_chat")
	require.NoError(t, store.CreateWorkflow(ctx, wf))

	t.Run("按工作流和类型查询", func(t *testing.T) {
		ds := dataset.NewDataset(wf.ID, "org", "demo", "chat")
		require.NoError(t, store.CreateDataset(ctx, ds))

		found, err := store.FindDatasetByWorkflowAndType(ctx, wf.ID, "chat")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, ds.ID, found.ID)
		assert.False(t, found.IsCached)
		assert.Empty(t, found.LatestCommitHash)

		missing, err := store.FindDatasetByWorkflowAndType(ctx, wf.ID, "seq2seq")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("标记缓存并记录哈希", func(t *testing.T) {
		ds, err := store.FindDatasetByWorkflowAndType(ctx, wf.ID, "chat")
		require.NoError(t, err)
		require.NotNil(t, ds)

		require.NoError(t, store.MarkDatasetCached(ctx, ds.ID, "deadbeef"))

		stored, err := store.GetDatasetByID(ctx, ds.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsCached)
		assert.Equal(t, "deadbeef", stored.LatestCommitHash)

		cached, err := store.ListCachedDatasets(ctx)
		require.NoError(t, err)
		require.Len(t, cached, 1)
		assert.Equal(t, ds.ID, cached[0].ID)
	})

	t.Run("工作流的第一个数据集", func(t *testing.T) {
		first, err := store.FirstDatasetByWorkflow(ctx, wf.ID)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, "chat", first.TaskType)

		none, err := store.FirstDatasetByWorkflow(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, none)
	})
}

func TestStore_Rows(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	wf := workflow.NewWorkflow("u-1", "Training", "training_chat")
	require.NoError(t, store.CreateWorkflow(ctx, wf))
	ds := dataset.NewDataset(wf.ID, "org", "demo", "chat")
	require.NoError(t, store.CreateDataset(ctx, ds))

	t.Run("批量写入并读回字段", func(t *testing.T) {
		now := time.Now()
		rows := []*dataset.Row{
			{ID: "r-1", DatasetID: ds.ID, File: "train.csv", Fields: map[string]string{"input": "hello", "output": "world"}, CreateTime: now},
			{ID: "r-2", DatasetID: ds.ID, File: "train.csv", Fields: map[string]string{"input": "foo", "output": "bar"}, CreateTime: now.Add(time.Second)},
		}
		require.NoError(t, store.InsertRows(ctx, rows))

		stored, err := store.ListRowsByDataset(ctx, ds.ID)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, "r-1", stored[0].ID)
		assert.Equal(t, "hello", stored[0].Fields["input"])
		assert.Equal(t, "world", stored[0].Fields["output"])

		count, err := store.CountRowsByDataset(ctx, ds.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("主键冲突时整批回滚", func(t *testing.T) {
		before, err := store.CountRowsByDataset(ctx, ds.ID)
		require.NoError(t, err)

		rows := []*dataset.Row{
			{ID: "r-3", DatasetID: ds.ID, File: "extra.csv", Fields: map[string]string{"input": "x"}, CreateTime: time.Now()},
			{ID: "r-1", DatasetID: ds.ID, File: "extra.csv", Fields: map[string]string{"input": "y"}, CreateTime: time.Now()}, // 重复主键
		}
		require.Error(t, store.InsertRows(ctx, rows))

		after, err := store.CountRowsByDataset(ctx, ds.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after, "事务失败后不应留下部分行")
	})

	t.Run("空批次为无操作", func(t *testing.T) {
		assert.NoError(t, store.InsertRows(ctx, nil))
	})
}
