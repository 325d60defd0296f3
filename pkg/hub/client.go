package hub

import (
	"context"
	"strings"

	"github.com/LENAX/autotune/pkg/core/errs"
)

// RepoInfo 远端数据集仓库信息（对外导出）
type RepoInfo struct {
	// Sha 仓库当前内容哈希，用于陈旧度追踪
	Sha string `json:"sha"`
}

// Client 远端数据集仓库客户端接口（对外导出）
type Client interface {
	// RepoExists 检查仓库是否存在
	RepoExists(ctx context.Context, repoID string) (bool, error)

	// RepoInfo 获取仓库信息（含内容哈希）
	RepoInfo(ctx context.Context, repoID string) (*RepoInfo, error)

	// ListRepoFiles 枚举仓库内的文件名
	ListRepoFiles(ctx context.Context, repoID string) ([]string, error)

	// Download 下载单个文件到本地暂存目录，返回本地路径
	Download(ctx context.Context, repoID string, filename string) (string, error)
}

// ParseReference 拆分数据集引用
// 引用形如 "hubID/datasetName"，不得含多余斜杠
func ParseReference(reference string) (hubID string, name string, err error) {
	parts := strings.Split(reference, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errs.Validationf("invalid dataset reference %q, expected \"hubId/datasetName\"", reference)
	}
	return parts[0], parts[1], nil
}
