package middleware

// gin上下文键，供下游handler读取管线结果
const (
	// ContextUserKey 已解析的调用方身份（*identity.User）
	ContextUserKey = "user"
	// ContextWorkflowIDKey 绑定的工作流ID
	ContextWorkflowIDKey = "workflow_id"
	// ContextDatasetIDKey 解析出的数据集ID
	ContextDatasetIDKey = "dataset_id"
	// ContextWorkflowCreatedKey 本次请求是否新建了工作流
	ContextWorkflowCreatedKey = "workflow_created"
)
