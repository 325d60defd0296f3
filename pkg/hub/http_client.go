package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// HTTPClient 基于HTTP的远端数据集仓库客户端实现（对外导出）
// 对接HuggingFace Hub风格的数据集API
type HTTPClient struct {
	baseURL    string
	token      string
	scratchDir string
	httpClient *http.Client
}

// NewHTTPClient 创建HTTP客户端
// baseURL: 仓库服务地址；token: 访问令牌，可为空；scratchDir: 下载暂存目录
func NewHTTPClient(baseURL, token, scratchDir string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		scratchDir: scratchDir,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// repoResponse 仓库信息接口的响应体
type repoResponse struct {
	Sha      string `json:"sha"`
	Siblings []struct {
		Rfilename string `json:"rfilename"`
	} `json:"siblings"`
}

// newRequest 构造带鉴权头的请求
func (c *HTTPClient) newRequest(ctx context.Context, method, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// RepoExists 检查仓库是否存在
func (c *HTTPClient) RepoExists(ctx context.Context, repoID string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.repoInfoURL(repoID))
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("查询仓库 %s 失败: %w", repoID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound, http.StatusUnauthorized:
		// 未授权与不存在对调用方等价：仓库不可见
		return false, nil
	default:
		return false, fmt.Errorf("查询仓库 %s 返回异常状态: %d", repoID, resp.StatusCode)
	}
}

// getRepo 获取并解析仓库信息
func (c *HTTPClient) getRepo(ctx context.Context, repoID string) (*repoResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.repoInfoURL(repoID))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("查询仓库 %s 失败: %w", repoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("查询仓库 %s 返回异常状态: %d", repoID, resp.StatusCode)
	}

	var repo repoResponse
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return nil, fmt.Errorf("解析仓库 %s 响应失败: %w", repoID, err)
	}
	return &repo, nil
}

// RepoInfo 获取仓库信息
func (c *HTTPClient) RepoInfo(ctx context.Context, repoID string) (*RepoInfo, error) {
	repo, err := c.getRepo(ctx, repoID)
	if err != nil {
		return nil, err
	}
	return &RepoInfo{Sha: repo.Sha}, nil
}

// ListRepoFiles 枚举仓库内的文件名
func (c *HTTPClient) ListRepoFiles(ctx context.Context, repoID string) ([]string, error) {
	repo, err := c.getRepo(ctx, repoID)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(repo.Siblings))
	for _, s := range repo.Siblings {
		files = append(files, s.Rfilename)
	}
	return files, nil
}

// Download 下载单个文件到本地暂存目录
func (c *HTTPClient) Download(ctx context.Context, repoID string, filename string) (string, error) {
	rawURL := fmt.Sprintf("%s/datasets/%s/resolve/main/%s",
		c.baseURL, repoID, url.PathEscape(filename))

	req, err := c.newRequest(ctx, http.MethodGet, rawURL)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("下载文件 %s 失败: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("下载文件 %s 返回异常状态: %d", filename, resp.StatusCode)
	}

	localDir := filepath.Join(c.scratchDir, filepath.FromSlash(repoID))
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return "", fmt.Errorf("创建暂存目录失败: %w", err)
	}

	localPath := filepath.Join(localDir, filepath.Base(filename))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("创建暂存文件失败: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("写入暂存文件 %s 失败: %w", localPath, err)
	}

	return localPath, nil
}

// repoInfoURL 仓库信息接口地址
func (c *HTTPClient) repoInfoURL(repoID string) string {
	return fmt.Sprintf("%s/api/datasets/%s", c.baseURL, repoID)
}

// 确保 HTTPClient 实现 Client 接口
var _ Client = (*HTTPClient)(nil)
