package detectors

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

var (
	ddlPattern          = regexp.MustCompile(`(?i)\b(CREATE[ \t]+TABLE|ALTER[ \t]+TABLE|DROP[ \t]+TABLE|CREATE[ \t]+INDEX)\b[^\n]*`)
	djangoMigration     = regexp.MustCompile(`class\s+Migration\s*\(\s*migrations\.Migration`)
	alembicOpPattern    = regexp.MustCompile(`\bop\.(create_table|drop_table|add_column|drop_column|alter_column)\(`)
	flywayNamePattern   = regexp.MustCompile(`^V\d+__`)
	prismaModelPattern  = regexp.MustCompile(`(?m)^model\s+\w+\s*\{`)
	railsMigrationClass = regexp.MustCompile(`class\s+\w+\s*<\s*ActiveRecord::Migration`)
)

// migrationFramework guesses the framework from path markers, falling back
// to content markers.
func migrationFramework(path string, data []byte) string {
	lower := strings.ToLower(path)
	base := filepath.Base(path)
	switch {
	case strings.Contains(lower, "alembic") || alembicOpPattern.Match(data):
		return "alembic"
	case strings.Contains(lower, "flyway") || flywayNamePattern.MatchString(base):
		return "flyway"
	case strings.Contains(lower, "prisma"):
		return "prisma"
	case djangoMigration.Match(data):
		return "django"
	case railsMigrationClass.Match(data):
		return "rails"
	case strings.HasSuffix(lower, ".py"):
		return "django"
	default:
		return ""
	}
}

// Migration reports incremental schema-change files. It only fires on
// paths with migration framework markers; the raw-SQL detector is
// suppressed on the same paths so a migration never double-reports as
// application SQL.
func Migration(path string, data []byte) []types.Finding {
	if !isMigrationPath(path) {
		return nil
	}
	evidence := firstMigrationEvidence(data)
	if evidence == "" {
		return nil
	}
	line := 1
	if idx := strings.Index(string(data), evidence); idx >= 0 {
		line = lineAt(data, idx)
	}
	return []types.Finding{{
		Type:       types.TypeMigration,
		Detector:   "migration",
		Framework:  migrationFramework(path, data),
		Path:       path,
		Line:       line,
		Evidence:   []string{trimEvidence(evidence)},
		Confidence: 0.85,
	}}
}

// firstMigrationEvidence returns the first schema-change marker found in
// the content, or "" when the file carries no migration body.
func firstMigrationEvidence(data []byte) string {
	if m := ddlPattern.Find(data); m != nil {
		return string(m)
	}
	if m := djangoMigration.Find(data); m != nil {
		return string(m)
	}
	if m := alembicOpPattern.Find(data); m != nil {
		return string(m)
	}
	if m := railsMigrationClass.Find(data); m != nil {
		return string(m)
	}
	if m := prismaModelPattern.Find(data); m != nil {
		return string(m)
	}
	return ""
}
