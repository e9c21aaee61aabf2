package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/dbmapper/dbmapper/internal/types"
)

// aggregate finalizes collected findings: fingerprints, sequential IDs,
// then the confidence threshold. IDs are assigned before the threshold is
// applied, so filtering leaves gaps in the sequence rather than renumbering
// survivors.
func aggregate(findings []types.Finding, cfg Config) []types.Finding {
	for i := range findings {
		findings[i].Fingerprint = fingerprint(findings[i])
	}
	if cfg.StableIDs {
		sort.SliceStable(findings, func(i, j int) bool {
			a, b := findings[i], findings[j]
			if a.Path != b.Path {
				return a.Path < b.Path
			}
			if a.Line != b.Line {
				return a.Line < b.Line
			}
			if a.Type != b.Type {
				return a.Type < b.Type
			}
			return a.Detector < b.Detector
		})
	}
	for i := range findings {
		findings[i].ID = fmt.Sprintf("f-%04d", i+1)
	}

	out := findings[:0]
	for _, f := range findings {
		if f.Confidence < cfg.MinConfidence {
			if !cfg.KeepLowConfidence {
				continue
			}
			f.Flagged = true
		}
		out = append(out, f)
	}
	return out
}

// fingerprint hashes the identity of a finding (file, line, type, evidence)
// so the same artifact maps to the same value across runs regardless of
// collection order or ID assignment.
func fingerprint(f types.Finding) string {
	var b strings.Builder
	b.WriteString(f.Path)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(f.Line))
	b.WriteByte('|')
	b.WriteString(string(f.Type))
	for _, e := range f.Evidence {
		b.WriteByte('|')
		b.WriteString(e)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}
