package detectors

import (
	"regexp"

	"github.com/dbmapper/dbmapper/internal/types"
)

var (
	sqlConnectionPattern = regexp.MustCompile(`new\s+SqlConnection\s*\(`)
	dbContextPattern     = regexp.MustCompile(`class\s+(\w+)\s*:\s*DbContext`)
	dbSetPattern         = regexp.MustCompile(`DbSet<(\w+)>`)
	adoConnStringPattern = regexp.MustCompile(`(?i)(?:Server|Data Source)=[^;"']+;[^"'\n]*(?:Password|Pwd)=[^;"'\n]+`)
)

// CSharp reports ADO.NET and Entity Framework artifacts in C#/VB sources.
func CSharp(path string, data []byte) []types.Finding {
	if !hasSuffixFold(path, ".cs", ".vb") {
		return nil
	}
	var out []types.Finding
	for _, loc := range sqlConnectionPattern.FindAllIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeConnection,
			Detector:   "csharp",
			Provider:   "mssql",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.85,
		})
	}
	for _, loc := range adoConnStringPattern.FindAllIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeConnection,
			Detector:   "csharp",
			Provider:   "mssql",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.9,
		})
	}
	for _, loc := range dbContextPattern.FindAllSubmatchIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeORMModel,
			Detector:   "csharp",
			Framework:  "entity_framework",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.9,
		})
	}
	for _, loc := range dbSetPattern.FindAllSubmatchIndex(data, -1) {
		out = append(out, types.Finding{
			Type:       types.TypeORMModel,
			Detector:   "csharp",
			Framework:  "entity_framework",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{trimEvidence(string(data[loc[0]:loc[1]]))},
			Confidence: 0.85,
		})
	}
	return out
}
