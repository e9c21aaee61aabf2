package detectors

import (
	"regexp"

	"github.com/dbmapper/dbmapper/internal/types"
)

var (
	passwordAssignPattern = regexp.MustCompile(`(?im)^[ \t]*(?:export[ \t]+)?((?:db|database|mysql|postgres|pg|mongo)?_?pass(?:word)?|pwd)[ \t]*[:=][ \t]*["']?([^\s"']{4,})`)
	jdbcCredsPattern      = regexp.MustCompile(`jdbc:\w+://[^\s"']*(?:password|pwd)=[^\s"'&;]+`)
)

// Secret reports embedded database credentials. It runs on every file
// regardless of the language filter; credentials leak into config as often
// as into code.
func Secret(path string, data []byte) []types.Finding {
	var out []types.Finding
	for _, loc := range passwordAssignPattern.FindAllSubmatchIndex(data, -1) {
		value := string(data[loc[4]:loc[5]])
		if isPlaceholder(value) {
			continue
		}
		out = append(out, types.Finding{
			Type:       types.TypeSecret,
			Detector:   "secret",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.7,
		})
	}
	for _, loc := range jdbcCredsPattern.FindAllIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeSecret,
			Detector:   "secret",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.85,
		})
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`(?i)^(\$\{|\$\(|<|%|\{\{|xxx+$|your[-_]|change(me)?|placeholder|example|secret$|password$|none$|null$|true$|false$)`)

func isPlaceholder(v string) bool {
	return placeholderPattern.MatchString(v)
}
