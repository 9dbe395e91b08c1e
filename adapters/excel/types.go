package excel

// RawRowData represents a row of raw spreadsheet data as string key-value pairs
type RawRowData map[string]string

// ExcelData represents the complete raw dataset before numeric coercion
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// ColumnType classifies a raw column by the cells it holds
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric" // every present cell parses as a number
	ColumnMixed   ColumnType = "mixed"   // some cells parse, some do not; the rest become missing
	ColumnText    ColumnType = "text"    // no cell parses; the column is skipped
	ColumnEmpty   ColumnType = "empty"   // no present cells at all
)
