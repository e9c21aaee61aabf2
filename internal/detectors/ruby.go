package detectors

import (
	"regexp"

	"github.com/dbmapper/dbmapper/internal/types"
)

var activeRecordPattern = regexp.MustCompile(`class\s+(\w+)\s*<\s*(?:ActiveRecord::Base|ApplicationRecord)\b`)

// RubyActiveRecord is the optional "ruby" plugin: ActiveRecord models.
func RubyActiveRecord(path string, data []byte) []types.Finding {
	if !hasSuffixFold(path, ".rb") {
		return nil
	}
	var out []types.Finding
	for _, loc := range activeRecordPattern.FindAllSubmatchIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeORMModel,
			Detector:   "ruby",
			Framework:  "active_record",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.9,
		})
	}
	return out
}
