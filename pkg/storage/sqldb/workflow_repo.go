package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LENAX/autotune/pkg/core/workflow"
	"github.com/LENAX/autotune/pkg/storage/dao"
)

// CreateWorkflow 创建Workflow
func (s *Store) CreateWorkflow(ctx context.Context, wf *workflow.Workflow) error {
	wfDAO := &dao.WorkflowDAO{
		ID:         wf.ID,
		UserID:     wf.UserID,
		Type:       wf.Type,
		Name:       wf.Name,
		Status:     wf.Status,
		CreateTime: wf.CreateTime,
	}

	query := `
	INSERT INTO workflows (id, user_id, type, name, status, create_time)
	VALUES (:id, :user_id, :type, :name, :status, :create_time)
	`
	if _, err := s.db.NamedExecContext(ctx, query, wfDAO); err != nil {
		return fmt.Errorf("创建Workflow失败: %w", err)
	}

	return nil
}

// GetWorkflowByID 根据ID查询Workflow
func (s *Store) GetWorkflowByID(ctx context.Context, id string) (*workflow.Workflow, error) {
	var wfDAO dao.WorkflowDAO
	query := s.db.Rebind(`SELECT id, user_id, type, name, status, create_time FROM workflows WHERE id = ?`)
	if err := s.db.GetContext(ctx, &wfDAO, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询Workflow失败: %w", err)
	}

	return daoToWorkflow(&wfDAO), nil
}

// ListWorkflowsByUser 按创建顺序列出用户的所有Workflow
func (s *Store) ListWorkflowsByUser(ctx context.Context, userID string) ([]*workflow.Workflow, error) {
	var wfDAOs []dao.WorkflowDAO
	query := s.db.Rebind(`SELECT id, user_id, type, name, status, create_time FROM workflows
	          WHERE user_id = ? ORDER BY create_time, id`)
	if err := s.db.SelectContext(ctx, &wfDAOs, query, userID); err != nil {
		return nil, fmt.Errorf("查询用户Workflow列表失败: %w", err)
	}

	workflows := make([]*workflow.Workflow, 0, len(wfDAOs))
	for i := range wfDAOs {
		workflows = append(workflows, daoToWorkflow(&wfDAOs[i]))
	}
	return workflows, nil
}

// ListWorkflows 列出所有Workflow
func (s *Store) ListWorkflows(ctx context.Context) ([]*workflow.Workflow, error) {
	var wfDAOs []dao.WorkflowDAO
	query := `SELECT id, user_id, type, name, status, create_time FROM workflows ORDER BY create_time, id`
	if err := s.db.SelectContext(ctx, &wfDAOs, query); err != nil {
		return nil, fmt.Errorf("查询Workflow列表失败: %w", err)
	}

	workflows := make([]*workflow.Workflow, 0, len(wfDAOs))
	for i := range wfDAOs {
		workflows = append(workflows, daoToWorkflow(&wfDAOs[i]))
	}
	return workflows, nil
}

// UpdateWorkflowStatus 更新Workflow状态
func (s *Store) UpdateWorkflowStatus(ctx context.Context, id string, status string) error {
	query := s.db.Rebind(`UPDATE workflows SET status = ? WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("更新Workflow状态失败: %w", err)
	}
	return nil
}

// DeleteWorkflow 删除Workflow及其级联数据（事务，幂等）
func (s *Store) DeleteWorkflow(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开始事务失败: %w", err)
	}
	defer tx.Rollback()

	// 1. 获取该Workflow的所有Dataset ID
	var datasetIDs []string
	query := tx.Rebind(`SELECT id FROM datasets WHERE workflow_id = ?`)
	if err := tx.SelectContext(ctx, &datasetIDs, query, id); err != nil {
		return fmt.Errorf("查询Dataset失败: %w", err)
	}

	// 2. 删除所有行记录
	for _, dsID := range datasetIDs {
		deleteRowsSQL := tx.Rebind(`DELETE FROM dataset_rows WHERE dataset_id = ?`)
		if _, err := tx.ExecContext(ctx, deleteRowsSQL, dsID); err != nil {
			return fmt.Errorf("删除行记录失败: %w", err)
		}
	}

	// 3. 删除所有Dataset
	deleteDatasetsSQL := tx.Rebind(`DELETE FROM datasets WHERE workflow_id = ?`)
	if _, err := tx.ExecContext(ctx, deleteDatasetsSQL, id); err != nil {
		return fmt.Errorf("删除Dataset失败: %w", err)
	}

	// 4. 删除Workflow
	deleteWorkflowSQL := tx.Rebind(`DELETE FROM workflows WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, deleteWorkflowSQL, id); err != nil {
		return fmt.Errorf("删除Workflow失败: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}

	return nil
}

// daoToWorkflow 将WorkflowDAO转换为Workflow实体
func daoToWorkflow(wfDAO *dao.WorkflowDAO) *workflow.Workflow {
	return &workflow.Workflow{
		ID:         wfDAO.ID,
		UserID:     wfDAO.UserID,
		Type:       wfDAO.Type,
		Name:       wfDAO.Name,
		Status:     wfDAO.Status,
		CreateTime: wfDAO.CreateTime,
	}
}
