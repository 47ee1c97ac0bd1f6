package models

// RawTable is one sheet of a source as returned by a fetch backend: a header
// row and the data rows, with source-specific column layout.
type RawTable struct {
	SourceID string
	Sheet    string
	Header   []string
	Rows     [][]string
}

// Records returns the header followed by every data row.
func (t *RawTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	records = append(records, t.Rows...)
	return records
}

// MissingColumns lists the required column names absent from the header.
func (t *RawTable) MissingColumns(required []string) []string {
	present := make(map[string]bool, len(t.Header))
	for _, col := range t.Header {
		present[col] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
