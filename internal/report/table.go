package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dbmapper/dbmapper/internal/engine"
	"github.com/dbmapper/dbmapper/internal/types"
)

type PrintOptions struct {
	NoColor bool
}

// PrintTable renders findings as a terminal table, sorted by location,
// followed by a summary footer with per-type counts and timing.
func PrintTable(w io.Writer, res engine.Result, opts PrintOptions) {
	findings := make([]types.Finding, len(res.Findings))
	copy(findings, res.Findings)
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})

	if len(findings) == 0 {
		fmt.Fprintln(w, "No database artifacts found.")
	} else {
		tbl := tablewriter.NewWriter(w)
		tbl.Header("ID", "Type", "Location", "Conf", "Evidence")
		for _, f := range findings {
			conf := fmt.Sprintf("%.2f", f.Confidence)
			if !opts.NoColor {
				conf = colorConfidence(f.Confidence)
			}
			id := f.ID
			if f.Flagged {
				id += " *"
			}
			tbl.Append([]string{
				id,
				string(f.Type),
				fmt.Sprintf("%s:%d", f.Path, f.Line),
				conf,
				firstEvidence(f),
			})
		}
		tbl.Render()
	}

	byType := map[types.FindingType]int{}
	for _, f := range findings {
		byType[f.Type]++
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d", len(findings))
	if len(findings) > 0 {
		parts := make([]string, 0, len(byType))
		for _, ft := range []types.FindingType{types.TypeConnection, types.TypeORMModel, types.TypeRawSQL, types.TypeMigration, types.TypeSchemaChange, types.TypeSecret} {
			if n := byType[ft]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s: %d", ft, n))
			}
		}
		fmt.Fprintf(w, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files scanned: %d\n", res.FilesScanned)
	if res.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs (%s, %d workers)\n", res.Duration.Seconds(), res.Strategy, res.Workers)
	}
}

func firstEvidence(f types.Finding) string {
	if len(f.Evidence) == 0 {
		return ""
	}
	ev := f.Evidence[0]
	if len(ev) > 60 {
		ev = ev[:57] + "..."
	}
	return ev
}

func colorConfidence(c float64) string {
	s := fmt.Sprintf("%.2f", c)
	switch {
	case c >= 0.9:
		return "\x1b[31m" + s + "\x1b[0m" // red
	case c >= 0.7:
		return "\x1b[33m" + s + "\x1b[0m" // yellow
	default:
		return "\x1b[36m" + s + "\x1b[0m" // cyan
	}
}
