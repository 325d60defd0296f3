package workflow

import (
	"time"

	"github.com/google/uuid"
)

// 工作流状态
const (
	StatusSetup      = "SETUP"
	StatusIterating  = "ITERATION"
	StatusGenerating = "GENERATION"
	StatusTraining   = "TRAINING"
	StatusPushing    = "PUSHING_MODEL"
	StatusIdle       = "IDLE"
)

// Workflow 工作流实体（对外导出）
// 一个用户拥有的工作单元，绑定任务类型、提示词和数据集
type Workflow struct {
	ID         string    `json:"workflow_id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Name       string    `json:"workflow_name"`
	Status     string    `json:"status"`
	CreateTime time.Time `json:"create_time"`
}

// NewWorkflow 创建Workflow实体
func NewWorkflow(userID, wfType, name string) *Workflow {
	return &Workflow{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       wfType,
		Name:       name,
		Status:     StatusSetup,
		CreateTime: time.Now(),
	}
}
