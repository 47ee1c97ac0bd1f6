package logging

// Standardized field names for structured logging.
const (
	FieldSource    = "source"
	FieldSheet     = "sheet"
	FieldParser    = "parser"
	FieldRunID     = "run_id"
	FieldMonth     = "month"
	FieldMerchant  = "merchant"
	FieldTag       = "tag"
	FieldKeyword   = "keyword"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldDropped   = "dropped"
	FieldBackend   = "backend"
	FieldFile      = "file_path"
)
