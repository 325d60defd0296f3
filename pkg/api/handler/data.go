package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/autotune/pkg/api/dto"
	"github.com/LENAX/autotune/pkg/api/middleware"
	"github.com/LENAX/autotune/pkg/storage"
)

// DataHandler 数据行API处理器
// 返回缓存管线解析出的数据集的已摄取行
type DataHandler struct {
	datasets storage.DatasetRepository
}

// NewDataHandler 创建DataHandler
func NewDataHandler(datasets storage.DatasetRepository) *DataHandler {
	return &DataHandler{datasets: datasets}
}

// Rows 列出已解析数据集的数据行
// GET /api/v1/data（位于CacheDataset中间件之后）
func (h *DataHandler) Rows(c *gin.Context) {
	datasetID := c.GetString(middleware.ContextDatasetIDKey)
	if datasetID == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("no dataset available"))
		return
	}

	rows, err := h.datasets.ListRowsByDataset(c.Request.Context(), datasetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list dataset rows"))
		return
	}

	items := make([]dto.RowItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.RowItem{
			ID:     row.ID,
			File:   row.File,
			Fields: row.Fields,
		})
	}

	c.JSON(http.StatusOK, dto.DataResponse{
		DatasetID: datasetID,
		Total:     len(items),
		Rows:      items,
	})
}
