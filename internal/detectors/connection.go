package detectors

import (
	"regexp"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

// dsnPattern matches connection-string URIs for the supported providers.
// Shared read-only with the env-var detector.
var dsnPattern = regexp.MustCompile(`(?i)(postgres(?:ql)?|mysql|mariadb|mongodb|sqlite|mssql)://[\w:@\-./%?=~&]+`)

// normalizeProvider canonicalizes scheme aliases ("postgres" reports as
// "postgresql").
func normalizeProvider(p string) string {
	p = strings.ToLower(p)
	if p == "postgres" {
		return "postgresql"
	}
	return p
}

// Connection reports DSN-style connection strings embedded in file content.
func Connection(path string, data []byte) []types.Finding {
	var out []types.Finding
	for _, loc := range dsnPattern.FindAllSubmatchIndex(data, -1) {
		match := string(data[loc[0]:loc[1]])
		provider := normalizeProvider(string(data[loc[2]:loc[3]]))
		out = append(out, types.Finding{
			Type:       types.TypeConnection,
			Detector:   "connection",
			Provider:   provider,
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(match)},
			Confidence: 0.95,
		})
	}
	return out
}
