package pipeline

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/LENAX/autotune/pkg/core/dataset"
	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/taskschema"
	"github.com/LENAX/autotune/pkg/storage"
)

// TabularIngester 表格数据摄取器（对外导出）
// 校验表格文件的列模式、调和行标识符并批量落库
type TabularIngester struct {
	datasets storage.DatasetRepository
}

// NewTabularIngester 创建摄取器
func NewTabularIngester(datasets storage.DatasetRepository) *TabularIngester {
	return &TabularIngester{datasets: datasets}
}

// Ingest 依次摄取各文件，返回累计行数
// 单个文件内的行在一个事务中写入；前序文件失败后不回滚已写入的文件
func (i *TabularIngester) Ingest(ctx context.Context, ds *dataset.Dataset, mappings []taskschema.Mapping, filePaths []string) (int, error) {
	total := 0
	for _, path := range filePaths {
		n, err := i.ingestFile(ctx, ds, mappings, path)
		if err != nil {
			return total, err
		}
		total += n
		log.Printf("inserted %d records into the db for %s", n, filepath.Base(path))
	}
	return total, nil
}

// ingestFile 摄取单个表格文件
func (i *TabularIngester) ingestFile(ctx context.Context, ds *dataset.Dataset, mappings []taskschema.Mapping, path string) (int, error) {
	filename := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return 0, errs.Wrap("failed to open tabular file "+filename, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, errs.Validationf("failed to parse tabular file %s: %v", filename, err)
	}

	var header []string
	if len(records) > 0 {
		header = records[0]
	}

	columnIndex := make(map[string]int, len(header))
	for idx, col := range header {
		columnIndex[col] = idx
	}

	// 先校验模式要求的所有源列，缺失时在写入任何行之前失败
	for _, m := range mappings {
		if _, ok := columnIndex[m.Column]; !ok {
			return 0, errs.Validationf("column '%s' does not exist in the dataset for %s", m.Column, filename)
		}
	}

	idIdx, hasID := columnIndex["id"]

	now := time.Now()
	rows := make([]*dataset.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		// 标识符调和：非法的id值替换为新生成的v4 UUID
		rowID := ""
		if hasID && idIdx < len(record) && isValidUUID(record[idIdx]) {
			rowID = record[idIdx]
		} else {
			rowID = uuid.NewString()
		}

		fields := make(map[string]string, len(mappings))
		for _, m := range mappings {
			fields[m.Field] = record[columnIndex[m.Column]]
		}

		rows = append(rows, &dataset.Row{
			ID:         rowID,
			DatasetID:  ds.ID,
			File:       filename,
			Fields:     fields,
			CreateTime: now,
		})
	}

	if err := i.datasets.InsertRows(ctx, rows); err != nil {
		return 0, errs.Wrap("failed to persist rows for "+filename, err)
	}

	return len(rows), nil
}

// isValidUUID 检查值是否为规范形式的v4 UUID
func isValidUUID(value string) bool {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return false
	}
	return parsed.Version() == 4 && parsed.String() == value
}
