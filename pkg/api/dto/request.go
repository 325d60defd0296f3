package dto

// CacheDatasetRequest 数据集缓存管线请求参数
// dataset为"hubID/name"引用，可缺省；task_type必填
type CacheDatasetRequest struct {
	Dataset  string `form:"dataset" json:"dataset" binding:"omitempty"`
	TaskType string `form:"task_type" json:"task_type" binding:"omitempty"`
}

// UpdateWorkflowStatusRequest 更新Workflow状态请求
type UpdateWorkflowStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
