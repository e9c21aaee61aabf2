package detectors

import (
	"regexp"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

// schemaChangePattern covers destructive or structural DDL beyond table
// creation; these matter even inside files the raw-SQL detector skips.
var schemaChangePattern = regexp.MustCompile(`(?i)\b(ALTER[ \t]+TABLE|DROP[ \t]+TABLE|ADD[ \t]+COLUMN|DROP[ \t]+COLUMN|RENAME[ \t]+COLUMN)\b[^\n]*`)

// SchemaChange reports DDL statements that modify existing schema. It runs
// on SQL files and migration paths, where structural changes live.
func SchemaChange(path string, data []byte) []types.Finding {
	if !hasSuffixFold(path, ".sql") && !isMigrationPath(path) {
		return nil
	}
	var out []types.Finding
	for _, loc := range schemaChangePattern.FindAllSubmatchIndex(data, -1) {
		keyword := strings.ToUpper(collapseSpaces(string(data[loc[2]:loc[3]])))
		out = append(out, types.Finding{
			Type:       types.TypeSchemaChange,
			Detector:   "schema_change",
			SQLType:    keyword,
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.85,
		})
	}
	return out
}
