package identity

import "time"

// User 调用方身份实体（对外导出）
// 首次见到新的用户ID时创建，本核心不删除
type User struct {
	ID         string    `json:"user_id"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreateTime time.Time `json:"create_time"`
}
