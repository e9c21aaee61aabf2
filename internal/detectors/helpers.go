package detectors

import (
	"bytes"
	"strings"
)

const maxEvidenceLen = 200

// lineAt converts a byte offset into a 1-based line number by counting the
// newlines preceding it, matching the file's raw numbering.
func lineAt(data []byte, offset int) int {
	if offset > len(data) {
		offset = len(data)
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// trimEvidence bounds a matched snippet so oversized matches do not bloat
// reports.
func trimEvidence(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxEvidenceLen {
		return s[:maxEvidenceLen] + "…"
	}
	return s
}

// collapseSpaces normalizes internal whitespace, used to canonicalize SQL
// keywords like "CREATE   TABLE".
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasSuffixFold(path string, suffixes ...string) bool {
	lower := strings.ToLower(path)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
