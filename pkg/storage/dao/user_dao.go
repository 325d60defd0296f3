package dao

import "time"

// UserDAO users表的数据访问对象（内部使用）
type UserDAO struct {
	ID         string    `db:"id"`
	Role       string    `db:"role"`
	IsActive   bool      `db:"is_active"`
	CreateTime time.Time `db:"create_time"`
}
