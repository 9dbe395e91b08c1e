package excel

// ReaderConfig holds configuration for a spreadsheet data source
type ReaderConfig struct {
	FilePath      string   `json:"file_path"`
	Sheet         string   `json:"sheet"`          // xlsx only
	MissingTokens []string `json:"missing_tokens"` // cells read as missing, compared case-insensitively
	KeepText      bool     `json:"keep_text"`      // keep text columns as all-missing instead of skipping them
}

// DefaultReaderConfig returns the defaults used by NewDataReader
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Sheet:         "Sheet1",
		MissingTokens: []string{"", "na", "n/a", "nan", "null", "none", "-"},
	}
}
