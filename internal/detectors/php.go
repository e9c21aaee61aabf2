package detectors

import (
	"regexp"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

var (
	mysqliPattern    = regexp.MustCompile(`mysqli_connect\s*\(|new\s+mysqli\s*\(`)
	pdoPattern       = regexp.MustCompile(`new\s+PDO\s*\(\s*["'](\w+):[^"']*["']`)
	eloquentPattern  = regexp.MustCompile(`class\s+(\w+)\s+extends\s+(?:Model|Eloquent)\b`)
	wpdbQueryPattern = regexp.MustCompile(`\$wpdb->(?:query|get_results)\s*\(`)
)

// PHP reports database artifacts in PHP sources: mysqli/PDO connections,
// Eloquent models, and WordPress query calls.
func PHP(path string, data []byte) []types.Finding {
	if !hasSuffixFold(path, ".php") {
		return nil
	}
	var out []types.Finding
	for _, loc := range mysqliPattern.FindAllIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeConnection,
			Detector:   "php",
			Provider:   "mysql",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.85,
		})
	}
	for _, loc := range pdoPattern.FindAllSubmatchIndex(data, -1) {
		provider := normalizeProvider(strings.ToLower(string(data[loc[2]:loc[3]])))
		out = append(out, types.Finding{
			Type:       types.TypeConnection,
			Detector:   "php",
			Provider:   provider,
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.85,
		})
	}
	for _, loc := range eloquentPattern.FindAllSubmatchIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeORMModel,
			Detector:   "php",
			Framework:  "eloquent",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.8,
		})
	}
	for _, loc := range wpdbQueryPattern.FindAllIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeRawSQL,
			Detector:   "php",
			SQLType:    "QUERY",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.75,
		})
	}
	return out
}
