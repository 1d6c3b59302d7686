package output

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "query_id\ttarget_id\tscore\tquery_begin\tquery_end\ttarget_begin\ttarget_end\tcigar"

// Canonical output format names.
const (
	FormatText = "text"
	FormatJSON = "json"
)
