package output

// Output format names.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatTSV   = "tsv"
)

// TSVHeader is the canonical header row for segment tables.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "query\tsubject\tquery_start\tquery_end\tsubject_start\tsubject_end\tidentity\tstrand"
