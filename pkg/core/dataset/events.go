package dataset

import (
	"time"

	"github.com/google/uuid"
)

// EventType 数据集事件类型
type EventType string

const (
	// EventWorkflowCreated 工作流创建事件
	EventWorkflowCreated EventType = "workflow.created"
	// EventCached 数据集缓存完成事件
	EventCached EventType = "dataset.cached"
	// EventIngestFailed 数据集摄取失败事件
	EventIngestFailed EventType = "dataset.ingest_failed"
)

// Event 数据集事件（对外导出）
// 发布到事件总线，供下游训练调度等组件订阅
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	WorkflowID string    `json:"workflow_id"`
	DatasetID  string    `json:"dataset_id,omitempty"`
	TaskType   string    `json:"task_type,omitempty"`
	RowCount   int       `json:"row_count,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEvent 创建数据集事件
func NewEvent(eventType EventType, workflowID string) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		WorkflowID: workflowID,
		Timestamp:  time.Now(),
	}
}
