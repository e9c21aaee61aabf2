package types

// FindingType classifies the kind of database artifact a finding reports.
type FindingType string

const (
	TypeConnection   FindingType = "connection"
	TypeORMModel     FindingType = "orm_model"
	TypeRawSQL       FindingType = "raw_sql"
	TypeMigration    FindingType = "migration"
	TypeSchemaChange FindingType = "schema_change"
	TypeSecret       FindingType = "secret"
)

// Finding describes a single database-related artifact detected at a path
// and line, with ordered evidence snippets and a confidence in [0,1].
// ID is assigned by the aggregator after all detection completes; without
// stable-ID mode it follows completion order and is not reproducible
// across runs at different concurrency levels. Fingerprint is a
// content-derived hash of file+line+type+evidence and is stable.
// Description is written exactly once by the enrichment stage.
type Finding struct {
	ID          string      `json:"id,omitempty"`
	Type        FindingType `json:"type"`
	Provider    string      `json:"provider,omitempty"`
	Framework   string      `json:"framework,omitempty"`
	SQLType     string      `json:"sql_type,omitempty"`
	Detector    string      `json:"detector"`
	Path        string      `json:"file"`
	Line        int         `json:"line"`
	Evidence    []string    `json:"evidence"`
	Confidence  float64     `json:"confidence"`
	Fingerprint string      `json:"fingerprint,omitempty"`
	Flagged     bool        `json:"flagged,omitempty"`
	Description string      `json:"description,omitempty"`
}

// FileEntry is one file eligible for detection, as produced by discovery.
// Entries are immutable once returned.
type FileEntry struct {
	Path     string `json:"path"`     // absolute path
	Rel      string `json:"rel"`      // path relative to the repository root
	Size     int64  `json:"size"`     // byte size at discovery time
	Language string `json:"language"` // inferred from extension or exact name
}
