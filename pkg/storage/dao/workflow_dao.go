package dao

import "time"

// WorkflowDAO workflows表的数据访问对象（内部使用）
type WorkflowDAO struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Type       string    `db:"type"`
	Name       string    `db:"name"`
	Status     string    `db:"status"`
	CreateTime time.Time `db:"create_time"`
}
