package detectors

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

// sqlStatementPattern matches the head of a SQL statement up to the end of
// its line; the keyword group becomes the sql_type subtype.
var sqlStatementPattern = regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE[ \t]+TABLE|ALTER[ \t]+TABLE)\b[ \t]+[^\n]+`)

// configExtensions hold SQL as data (queries in YAML pipelines, fixture
// JSON) and would be pure noise for the raw-SQL detector.
var configExtensions = map[string]bool{
	".yaml": true, ".yml": true, ".json": true, ".xml": true, ".ini": true,
	".cfg": true, ".conf": true, ".env": true, ".toml": true, ".properties": true,
}

var migrationIndicators = []string{"migration", "migrations", "flyway", "alembic", "prisma"}

// isMigrationPath reports whether the path carries a migration framework
// marker. Migration files are suppressed for raw SQL and handled by the
// migration detector instead.
func isMigrationPath(path string) bool {
	lower := strings.ToLower(path)
	for _, ind := range migrationIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// RawSQL reports inline SQL statements in application code.
func RawSQL(path string, data []byte) []types.Finding {
	if configExtensions[strings.ToLower(filepath.Ext(path))] || isMigrationPath(path) {
		return nil
	}
	var out []types.Finding
	for _, loc := range sqlStatementPattern.FindAllSubmatchIndex(data, -1) {
		keyword := strings.ToUpper(collapseSpaces(string(data[loc[2]:loc[3]])))
		out = append(out, types.Finding{
			Type:       types.TypeRawSQL,
			Detector:   "raw_sql",
			SQLType:    keyword,
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.8,
		})
	}
	return out
}
