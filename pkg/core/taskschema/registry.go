package taskschema

import "sync"

// Mapping 规范字段到源列的映射（对外导出）
// Field是行记录的规范字段名，Column是表格文件中的源列名
type Mapping struct {
	Field  string
	Column string
}

// Registry 任务模式注册表（对外导出）
// 维护任务类型到必需列模式的映射，顺序决定字段填充顺序
type Registry struct {
	mu       sync.RWMutex
	mappings map[string][]Mapping
}

// NewRegistry 创建带内置任务类型的注册表
func NewRegistry() *Registry {
	r := &Registry{mappings: make(map[string][]Mapping)}

	// 内置任务类型
	r.Register("text_classification", []Mapping{
		{Field: "input", Column: "text"},
		{Field: "output", Column: "label"},
	})
	r.Register("seq2seq", []Mapping{
		{Field: "input", Column: "input"},
		{Field: "output", Column: "output"},
	})
	r.Register("chat", []Mapping{
		{Field: "input", Column: "prompt"},
		{Field: "output", Column: "response"},
	})

	return r
}

// Register 注册任务类型的列模式
// 空模式视为未注册
func (r *Registry) Register(taskType string, mappings []Mapping) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(mappings) == 0 {
		delete(r.mappings, taskType)
		return
	}
	r.mappings[taskType] = mappings
}

// Lookup 查询任务类型的列模式
// 返回映射列表副本和是否存在
func (r *Registry) Lookup(taskType string) ([]Mapping, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mappings, ok := r.mappings[taskType]
	if !ok || len(mappings) == 0 {
		return nil, false
	}

	out := make([]Mapping, len(mappings))
	copy(out, mappings)
	return out, true
}

// TaskTypes 列出所有已注册的任务类型
func (r *Registry) TaskTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.mappings))
	for t := range r.mappings {
		types = append(types, t)
	}
	return types
}
