package logging

// Standard field names for structured log output.
const (
	FieldFile          = "file_path"
	FieldFormat        = "format"
	FieldTransactionID = "transaction_id"
	FieldFigure        = "figure"
	FieldSource        = "source"
	FieldSnapshot      = "snapshot_version"
	FieldSummary       = "summary_version"
	FieldSummaryFile   = "summary_file"
	FieldFinding       = "finding"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldCount         = "count"
	FieldSkipped       = "skipped"
	FieldDay           = "day"
	FieldDelimiter     = "delimiter"
)
