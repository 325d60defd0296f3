package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LENAX/autotune/pkg/core/dataset"
	"github.com/LENAX/autotune/pkg/storage/dao"
)

// CreateDataset 创建Dataset记录
func (s *Store) CreateDataset(ctx context.Context, ds *dataset.Dataset) error {
	dsDAO := datasetToDAO(ds)

	query := `
	INSERT INTO datasets (id, workflow_id, hub_id, name, type, is_locally_cached, latest_commit_hash, create_time)
	VALUES (:id, :workflow_id, :hub_id, :name, :type, :is_locally_cached, :latest_commit_hash, :create_time)
	`
	if _, err := s.db.NamedExecContext(ctx, query, dsDAO); err != nil {
		return fmt.Errorf("创建Dataset失败: %w", err)
	}

	return nil
}

// GetDatasetByID 根据ID查询Dataset
func (s *Store) GetDatasetByID(ctx context.Context, id string) (*dataset.Dataset, error) {
	var dsDAO dao.DatasetDAO
	query := s.db.Rebind(`SELECT id, workflow_id, hub_id, name, type, is_locally_cached, latest_commit_hash, create_time
	          FROM datasets WHERE id = ?`)
	if err := s.db.GetContext(ctx, &dsDAO, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询Dataset失败: %w", err)
	}

	return daoToDataset(&dsDAO), nil
}

// FindDatasetByWorkflowAndType 按(工作流ID, 任务类型)查询Dataset
func (s *Store) FindDatasetByWorkflowAndType(ctx context.Context, workflowID, taskType string) (*dataset.Dataset, error) {
	var dsDAO dao.DatasetDAO
	query := s.db.Rebind(`SELECT id, workflow_id, hub_id, name, type, is_locally_cached, latest_commit_hash, create_time
	          FROM datasets WHERE workflow_id = ? AND type = ? ORDER BY create_time, id LIMIT 1`)
	if err := s.db.GetContext(ctx, &dsDAO, query, workflowID, taskType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询Dataset失败: %w", err)
	}

	return daoToDataset(&dsDAO), nil
}

// FirstDatasetByWorkflow 按创建顺序返回工作流的第一个Dataset
func (s *Store) FirstDatasetByWorkflow(ctx context.Context, workflowID string) (*dataset.Dataset, error) {
	var dsDAO dao.DatasetDAO
	query := s.db.Rebind(`SELECT id, workflow_id, hub_id, name, type, is_locally_cached, latest_commit_hash, create_time
	          FROM datasets WHERE workflow_id = ? ORDER BY create_time, id LIMIT 1`)
	if err := s.db.GetContext(ctx, &dsDAO, query, workflowID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询Dataset失败: %w", err)
	}

	return daoToDataset(&dsDAO), nil
}

// MarkDatasetCached 标记Dataset已缓存并记录内容哈希
func (s *Store) MarkDatasetCached(ctx context.Context, id string, commitHash string) error {
	query := s.db.Rebind(`UPDATE datasets SET is_locally_cached = ?, latest_commit_hash = ? WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, query, true, commitHash, id); err != nil {
		return fmt.Errorf("更新Dataset缓存状态失败: %w", err)
	}
	return nil
}

// ListCachedDatasets 列出所有已缓存的Dataset
func (s *Store) ListCachedDatasets(ctx context.Context) ([]*dataset.Dataset, error) {
	var dsDAOs []dao.DatasetDAO
	query := s.db.Rebind(`SELECT id, workflow_id, hub_id, name, type, is_locally_cached, latest_commit_hash, create_time
	          FROM datasets WHERE is_locally_cached = ?`)
	if err := s.db.SelectContext(ctx, &dsDAOs, query, true); err != nil {
		return nil, fmt.Errorf("查询已缓存Dataset列表失败: %w", err)
	}

	datasets := make([]*dataset.Dataset, 0, len(dsDAOs))
	for i := range dsDAOs {
		datasets = append(datasets, daoToDataset(&dsDAOs[i]))
	}
	return datasets, nil
}

// InsertRows 在单个事务内写入一批行记录
func (s *Store) InsertRows(ctx context.Context, rows []*dataset.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开始事务失败: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO dataset_rows (id, dataset_id, file, fields, create_time)
	VALUES (:id, :dataset_id, :file, :fields, :create_time)
	`
	for _, row := range rows {
		fieldsJSON, err := json.Marshal(row.Fields)
		if err != nil {
			return fmt.Errorf("序列化行字段失败: %w", err)
		}

		rowDAO := &dao.DatasetRowDAO{
			ID:         row.ID,
			DatasetID:  row.DatasetID,
			File:       row.File,
			Fields:     string(fieldsJSON),
			CreateTime: row.CreateTime,
		}
		if _, err := tx.NamedExecContext(ctx, query, rowDAO); err != nil {
			return fmt.Errorf("写入行记录失败: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}

	return nil
}

// ListRowsByDataset 列出Dataset的所有行记录
func (s *Store) ListRowsByDataset(ctx context.Context, datasetID string) ([]*dataset.Row, error) {
	var rowDAOs []dao.DatasetRowDAO
	query := s.db.Rebind(`SELECT id, dataset_id, file, fields, create_time FROM dataset_rows
	          WHERE dataset_id = ? ORDER BY create_time, id`)
	if err := s.db.SelectContext(ctx, &rowDAOs, query, datasetID); err != nil {
		return nil, fmt.Errorf("查询行记录失败: %w", err)
	}

	rows := make([]*dataset.Row, 0, len(rowDAOs))
	for i := range rowDAOs {
		row, err := daoToRow(&rowDAOs[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CountRowsByDataset 统计Dataset的行记录数
func (s *Store) CountRowsByDataset(ctx context.Context, datasetID string) (int, error) {
	var count int
	query := s.db.Rebind(`SELECT COUNT(*) FROM dataset_rows WHERE dataset_id = ?`)
	if err := s.db.GetContext(ctx, &count, query, datasetID); err != nil {
		return 0, fmt.Errorf("统计行记录失败: %w", err)
	}
	return count, nil
}

// datasetToDAO 将Dataset实体转换为DAO
func datasetToDAO(ds *dataset.Dataset) *dao.DatasetDAO {
	dsDAO := &dao.DatasetDAO{
		ID:         ds.ID,
		WorkflowID: ds.WorkflowID,
		HubID:      ds.HubID,
		Name:       ds.Name,
		TaskType:   ds.TaskType,
		IsCached:   ds.IsCached,
		CreateTime: ds.CreateTime,
	}
	if ds.LatestCommitHash != "" {
		dsDAO.LatestCommitHash.Valid = true
		dsDAO.LatestCommitHash.String = ds.LatestCommitHash
	}
	return dsDAO
}

// daoToDataset 将DatasetDAO转换为Dataset实体
func daoToDataset(dsDAO *dao.DatasetDAO) *dataset.Dataset {
	ds := &dataset.Dataset{
		ID:         dsDAO.ID,
		WorkflowID: dsDAO.WorkflowID,
		HubID:      dsDAO.HubID,
		Name:       dsDAO.Name,
		TaskType:   dsDAO.TaskType,
		IsCached:   dsDAO.IsCached,
		CreateTime: dsDAO.CreateTime,
	}
	if dsDAO.LatestCommitHash.Valid {
		ds.LatestCommitHash = dsDAO.LatestCommitHash.String
	}
	return ds
}

// daoToRow 将DatasetRowDAO转换为Row实体
func daoToRow(rowDAO *dao.DatasetRowDAO) (*dataset.Row, error) {
	var fields map[string]string
	if rowDAO.Fields != "" {
		if err := json.Unmarshal([]byte(rowDAO.Fields), &fields); err != nil {
			return nil, fmt.Errorf("反序列化行字段失败: %w", err)
		}
	}

	return &dataset.Row{
		ID:         rowDAO.ID,
		DatasetID:  rowDAO.DatasetID,
		File:       rowDAO.File,
		Fields:     fields,
		CreateTime: rowDAO.CreateTime,
	}, nil
}
