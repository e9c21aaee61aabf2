// Package report renders scan results to the supported output formats:
// JSON, CSV, HTML, Graphviz DOT, SARIF, and a terminal table. Renderers
// only read the result; ordering and filtering happened upstream.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dbmapper/dbmapper/internal/engine"
	"github.com/dbmapper/dbmapper/internal/git"
	"github.com/dbmapper/dbmapper/internal/types"
)

// Formats lists the file formats accepted by WriteFormats.
var Formats = []string{"json", "csv", "html", "graph", "sarif"}

// extensions maps a format name to the file extension it writes.
var extensions = map[string]string{
	"json":  ".json",
	"csv":   ".csv",
	"html":  ".html",
	"graph": ".dot",
	"sarif": ".sarif",
}

// Envelope is the JSON document shape: run metadata followed by findings.
type Envelope struct {
	RunID        string          `json:"run_id"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Repo         git.Metadata    `json:"repo,omitempty"`
	FilesScanned int             `json:"files_scanned"`
	Strategy     string          `json:"strategy"`
	Workers      int             `json:"workers"`
	DurationMS   int64           `json:"duration_ms"`
	Findings     []types.Finding `json:"findings"`
}

// NewEnvelope builds the JSON envelope for a scan result.
func NewEnvelope(res engine.Result) Envelope {
	findings := res.Findings
	if findings == nil {
		findings = []types.Finding{}
	}
	return Envelope{
		RunID:        res.RunID,
		GeneratedAt:  time.Now().UTC(),
		Repo:         res.Repo,
		FilesScanned: res.FilesScanned,
		Strategy:     res.Strategy.String(),
		Workers:      res.Workers,
		DurationMS:   res.Duration.Milliseconds(),
		Findings:     findings,
	}
}

// WriteJSON writes the result envelope as indented JSON.
func WriteJSON(w io.Writer, res engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewEnvelope(res))
}

// ValidFormat reports whether name is a supported file format.
func ValidFormat(name string) bool {
	_, ok := extensions[name]
	return ok
}

// WriteFormats writes one file per requested format, named basePath plus
// the format's extension. Unknown formats fail before any file is written.
func WriteFormats(basePath string, formats []string, res engine.Result) error {
	for _, f := range formats {
		if !ValidFormat(f) {
			return fmt.Errorf("unknown output format %q (supported: %v)", f, Formats)
		}
	}
	for _, f := range formats {
		path := basePath + extensions[f]
		if err := writeFile(path, f, res); err != nil {
			return fmt.Errorf("write %s report: %w", f, err)
		}
	}
	return nil
}

func writeFile(path, format string, res engine.Result) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		err = WriteJSON(out, res)
	case "csv":
		err = WriteCSV(out, res.Findings)
	case "html":
		err = WriteHTML(out, res)
	case "graph":
		err = WriteDOT(out, res.Findings)
	case "sarif":
		err = WriteSARIF(out, res.Findings)
	}
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
