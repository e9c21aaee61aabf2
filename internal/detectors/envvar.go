package detectors

import (
	"regexp"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

// envVarPattern matches assignments to database-looking environment
// variables (DB_URL, DATABASE_URL, anything containing DB).
var envVarPattern = regexp.MustCompile(`(?m)^(DB_URL|DATABASE_URL|[A-Z_]*DB[A-Z_]*)[ \t]*=[ \t]*(.+)`)

// EnvVar reports env-var assignments whose value embeds a DSN. The plain
// DSN detector already fires on the URI itself; this one captures the
// variable binding as separate, slightly weaker evidence.
func EnvVar(path string, data []byte) []types.Finding {
	var out []types.Finding
	for _, loc := range envVarPattern.FindAllSubmatchIndex(data, -1) {
		name := string(data[loc[2]:loc[3]])
		value := strings.TrimSpace(string(data[loc[4]:loc[5]]))
		m := dsnPattern.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		out = append(out, types.Finding{
			Type:       types.TypeConnection,
			Detector:   "env_var",
			Provider:   normalizeProvider(m[1]),
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(name + "=" + value)},
			Confidence: 0.9,
		})
	}
	return out
}
