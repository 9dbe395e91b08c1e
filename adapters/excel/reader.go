package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	cfg      ReaderConfig
	fileType string // "xlsx" or "csv"
	missing  map[string]bool
	logger   *internal.Logger
}

// NewDataReader creates a reader with the default configuration
func NewDataReader(filePath string) *DataReader {
	cfg := DefaultReaderConfig()
	cfg.FilePath = filePath
	return NewDataReaderWithConfig(cfg)
}

// NewDataReaderWithConfig creates a reader; the file type follows the extension
func NewDataReaderWithConfig(cfg ReaderConfig) *DataReader {
	if cfg.Sheet == "" {
		cfg.Sheet = DefaultReaderConfig().Sheet
	}
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		fileType = "csv"
	}
	missing := make(map[string]bool, len(cfg.MissingTokens))
	for _, tok := range cfg.MissingTokens {
		missing[strings.ToLower(strings.TrimSpace(tok))] = true
	}
	return &DataReader{cfg: cfg, fileType: fileType, missing: missing, logger: internal.DefaultLogger}
}

// WithLogger replaces the reader's logger
func (r *DataReader) WithLogger(l *internal.Logger) *DataReader {
	if l != nil {
		r.logger = l
	}
	return r
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.cfg.FilePath)

	if _, err := os.Stat(r.cfg.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s file %s", core.ErrNotFound, strings.ToUpper(r.fileType), r.cfg.FilePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	default:
		return r.readExcelData()
	}
}

// ReadTable reads the file and coerces every column to float64. Missing and
// unparseable cells become NaN; text-only columns are skipped unless KeepText.
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(r.cfg.FilePath), filepath.Ext(r.cfg.FilePath))
	table := dataset.NewTable(name)
	table.Source = r.cfg.FilePath

	types := r.InferColumnTypes(data)
	for _, header := range data.Headers {
		if types[header] == ColumnText && !r.cfg.KeepText {
			r.logger.Info("[DataReader] Skipping text column %q", header)
			continue
		}
		if types[header] == ColumnMixed {
			r.logger.Warn("[DataReader] Column %q has non-numeric cells; they are read as missing", header)
		}

		values := make([]float64, len(data.Rows))
		for i, row := range data.Rows {
			values[i] = r.parseCell(row[header])
		}
		if err := table.AddColumn(core.ColumnKey(header), values); err != nil {
			return nil, err
		}
	}

	if table.ColumnCount() == 0 {
		return nil, core.NewArgumentError("file", fmt.Sprintf("%s has no numeric columns", r.cfg.FilePath))
	}
	r.logger.Info("[DataReader] Loaded table %q (%d columns, %d rows)", table.Name, table.ColumnCount(), table.RowCount())
	return table, nil
}

// InferColumnTypes classifies each column by how many of its present cells parse as numbers
func (r *DataReader) InferColumnTypes(data *ExcelData) map[string]ColumnType {
	types := make(map[string]ColumnType, len(data.Headers))
	for _, header := range data.Headers {
		numeric, text := 0, 0
		for _, row := range data.Rows {
			cell := row[header]
			if r.isMissing(cell) {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err == nil {
				numeric++
			} else {
				text++
			}
		}

		switch {
		case numeric == 0 && text == 0:
			types[header] = ColumnEmpty
		case text == 0:
			types[header] = ColumnNumeric
		case numeric == 0:
			types[header] = ColumnText
		default:
			types[header] = ColumnMixed
		}
	}
	return types
}

// readExcelData reads the configured sheet into structured format
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.cfg.Sheet, err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)",
		r.cfg.Sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, core.NewArgumentError("file", "Excel file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	startTime := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, core.NewArgumentError("file", "CSV file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

// processRows converts raw string rows into ExcelData format.
// Blank headers are named column_N; short rows leave their trailing cells empty.
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData, len(headers))
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{Headers: headers, Rows: dataRows}, nil
}

func (r *DataReader) isMissing(cell string) bool {
	cell = strings.TrimSpace(cell)
	return cell == "" || r.missing[strings.ToLower(cell)]
}

func (r *DataReader) parseCell(cell string) float64 {
	if r.isMissing(cell) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
