package dto

import "time"

// ErrorResponse 错误响应结构
// 所有失败均以 {"error": msg} 形式返回
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// WorkflowSummary Workflow摘要信息
type WorkflowSummary struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	CreateTime time.Time `json:"create_time"`
}

// ResolveResponse 数据集解析结果响应
// 由缓存管线绑定的workflow与dataset
type ResolveResponse struct {
	Workflow        WorkflowSummary `json:"workflow"`
	DatasetID       string          `json:"dataset_id,omitempty"`
	WorkflowCreated bool            `json:"workflow_created"`
}

// DatasetSummary Dataset摘要信息
type DatasetSummary struct {
	ID               string    `json:"id"`
	WorkflowID       string    `json:"workflow_id"`
	HubID            string    `json:"hub_id"`
	Name             string    `json:"name"`
	TaskType         string    `json:"task_type"`
	IsCached         bool      `json:"is_locally_cached"`
	LatestCommitHash string    `json:"latest_commit_hash,omitempty"`
	CreateTime       time.Time `json:"create_time"`
}

// RowItem 已摄取的数据行
type RowItem struct {
	ID     string            `json:"id"`
	File   string            `json:"file"`
	Fields map[string]string `json:"fields"`
}

// DataResponse 数据行列表响应
type DataResponse struct {
	DatasetID string    `json:"dataset_id"`
	Total     int       `json:"total"`
	Rows      []RowItem `json:"rows"`
}

// ListResponse 列表响应
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}
