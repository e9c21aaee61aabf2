package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

// WriteDOT writes a Graphviz digraph of file-to-finding edges: one box per
// scanned file that produced findings, one ellipse per finding.
func WriteDOT(w io.Writer, findings []types.Finding) error {
	var b strings.Builder
	b.WriteString("digraph dbmap {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"sans-serif\"];\n")

	files := make([]string, 0)
	seen := map[string]bool{}
	for _, f := range findings {
		if !seen[f.Path] {
			seen[f.Path] = true
			files = append(files, f.Path)
		}
	}
	sort.Strings(files)

	for _, path := range files {
		fmt.Fprintf(&b, "  %s [shape=box, label=%s];\n", dotID("file", path), dotString(path))
	}
	for _, f := range findings {
		label := fmt.Sprintf("%s\\n%s (%.2f)", f.ID, f.Type, f.Confidence)
		fmt.Fprintf(&b, "  %s [shape=ellipse, label=\"%s\"];\n", dotID("finding", f.ID), label)
		fmt.Fprintf(&b, "  %s -> %s;\n", dotID("file", f.Path), dotID("finding", f.ID))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// dotID derives a safe node identifier from an arbitrary string.
func dotID(prefix, s string) string {
	var out strings.Builder
	out.WriteString(prefix)
	out.WriteByte('_')
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			out.WriteRune(r)
		} else {
			out.WriteByte('_')
		}
	}
	return out.String()
}

func dotString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
