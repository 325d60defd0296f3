package dao

import (
	"database/sql"
	"time"
)

// DatasetDAO datasets表的数据访问对象（内部使用）
type DatasetDAO struct {
	ID               string         `db:"id"`
	WorkflowID       string         `db:"workflow_id"`
	HubID            string         `db:"hub_id"`
	Name             string         `db:"name"`
	TaskType         string         `db:"type"`
	IsCached         bool           `db:"is_locally_cached"`
	LatestCommitHash sql.NullString `db:"latest_commit_hash"`
	CreateTime       time.Time      `db:"create_time"`
}

// DatasetRowDAO dataset_rows表的数据访问对象（内部使用）
type DatasetRowDAO struct {
	ID         string    `db:"id"`
	DatasetID  string    `db:"dataset_id"`
	File       string    `db:"file"`
	Fields     string    `db:"fields"` // JSON格式存储规范字段
	CreateTime time.Time `db:"create_time"`
}
