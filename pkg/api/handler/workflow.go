package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/autotune/pkg/api/dto"
	"github.com/LENAX/autotune/pkg/api/middleware"
	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/workflow"
	"github.com/LENAX/autotune/pkg/storage"
)

// WorkflowHandler Workflow API处理器
type WorkflowHandler struct {
	workflows storage.WorkflowRepository
}

// NewWorkflowHandler 创建WorkflowHandler
func NewWorkflowHandler(workflows storage.WorkflowRepository) *WorkflowHandler {
	return &WorkflowHandler{workflows: workflows}
}

// validStatuses 可更新的工作流状态集合（内部使用）
var validStatuses = map[string]bool{
	workflow.StatusSetup:      true,
	workflow.StatusIterating:  true,
	workflow.StatusGenerating: true,
	workflow.StatusTraining:   true,
	workflow.StatusPushing:    true,
	workflow.StatusIdle:       true,
}

// List 列出当前用户的Workflow
// GET /api/v1/workflows
func (h *WorkflowHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("user ID must be provided"))
		return
	}

	workflows, err := h.workflows.ListWorkflowsByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list workflows"))
		return
	}

	items := make([]dto.WorkflowSummary, 0, len(workflows))
	for _, wf := range workflows {
		items = append(items, workflowToSummary(wf))
	}

	c.JSON(http.StatusOK, dto.ListResponse[dto.WorkflowSummary]{
		Total: len(items),
		Items: items,
	})
}

// Get 获取Workflow详情
// GET /api/v1/workflows/:id
func (h *WorkflowHandler) Get(c *gin.Context) {
	wf, ok := h.ownedWorkflow(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, workflowToSummary(wf))
}

// Create 创建或复用Workflow并解析数据集
// POST /api/v1/workflows（位于CacheDataset中间件之后）
func (h *WorkflowHandler) Create(c *gin.Context) {
	workflowID := c.GetString(middleware.ContextWorkflowIDKey)

	wf, err := h.workflows.GetWorkflowByID(c.Request.Context(), workflowID)
	if err != nil || wf == nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to load workflow"))
		return
	}

	c.JSON(http.StatusOK, dto.ResolveResponse{
		Workflow:        workflowToSummary(wf),
		DatasetID:       c.GetString(middleware.ContextDatasetIDKey),
		WorkflowCreated: c.GetBool(middleware.ContextWorkflowCreatedKey),
	})
}

// UpdateStatus 更新Workflow状态
// PUT /api/v1/workflows/:id/status
func (h *WorkflowHandler) UpdateStatus(c *gin.Context) {
	wf, ok := h.ownedWorkflow(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkflowStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("status must be provided"))
		return
	}
	if !validStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid workflow status"))
		return
	}

	if err := h.workflows.UpdateWorkflowStatus(c.Request.Context(), wf.ID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to update workflow status"))
		return
	}

	wf.Status = req.Status
	c.JSON(http.StatusOK, workflowToSummary(wf))
}

// Delete 删除Workflow及其级联数据
// DELETE /api/v1/workflows/:id
func (h *WorkflowHandler) Delete(c *gin.Context) {
	wf, ok := h.ownedWorkflow(c)
	if !ok {
		return
	}

	if err := h.workflows.DeleteWorkflow(c.Request.Context(), wf.ID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to delete workflow"))
		return
	}

	c.JSON(http.StatusOK, map[string]string{
		"message":     "workflow deleted",
		"workflow_id": wf.ID,
	})
}

// ownedWorkflow 加载路径参数指定且属于当前用户的Workflow（内部使用）
// 失败时已写入响应并返回ok=false
func (h *WorkflowHandler) ownedWorkflow(c *gin.Context) (*workflow.Workflow, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("user ID must be provided"))
		return nil, false
	}

	id := c.Param("id")
	wf, err := h.workflows.GetWorkflowByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(errs.HTTPStatus(err), dto.NewErrorResponse("failed to load workflow"))
		return nil, false
	}
	if wf == nil || wf.UserID != user.ID {
		// 他人的工作流一律视为不存在
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("workflow not found"))
		return nil, false
	}
	return wf, true
}

// workflowToSummary 实体转DTO（内部使用）
func workflowToSummary(wf *workflow.Workflow) dto.WorkflowSummary {
	return dto.WorkflowSummary{
		ID:         wf.ID,
		UserID:     wf.UserID,
		Type:       wf.Type,
		Name:       wf.Name,
		Status:     wf.Status,
		CreateTime: wf.CreateTime,
	}
}
