package models

// DailySummary is the precomputed aggregate of a business day.
// Its layout belongs to the upstream summary producer; this module only reads it through
// the summary adapter. Numeric leaves are kept as exact text (json.Number, string or decimal).
type DailySummary map[string]interface{}
