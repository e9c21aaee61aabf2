package detectors

import (
	"regexp"

	"github.com/dbmapper/dbmapper/internal/types"
)

var (
	jpaEntityPattern    = regexp.MustCompile(`@Entity\b`)
	jdbcTemplatePattern = regexp.MustCompile(`\bJdbcTemplate\b`)
)

// JavaJPA is the optional "java" plugin: JPA entities and Spring JDBC use.
func JavaJPA(path string, data []byte) []types.Finding {
	if !hasSuffixFold(path, ".java") {
		return nil
	}
	var out []types.Finding
	for _, loc := range jpaEntityPattern.FindAllIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeORMModel,
			Detector:   "java",
			Framework:  "jpa",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{"@Entity"},
			Confidence: 0.9,
		})
	}
	for _, loc := range jdbcTemplatePattern.FindAllIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeRawSQL,
			Detector:   "java",
			SQLType:    "JDBC",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{"JdbcTemplate"},
			Confidence: 0.7,
		})
	}
	return out
}
