package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/dbmapper/dbmapper/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int           `json:"startLine"`
	Snippet   *sarifSnippet `json:"snippet,omitempty"`
}

type sarifSnippet struct {
	Text string `json:"text"`
}

// confidenceToLevel maps a finding confidence onto the SARIF level scale.
func confidenceToLevel(c float64) string {
	switch {
	case c >= 0.9:
		return "error"
	case c >= 0.7:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes findings as SARIF 2.1.0, one rule per detector.
func WriteSARIF(w io.Writer, findings []types.Finding) error {
	ruleIndex := map[string]int{}
	var rules []sarifRule
	for _, f := range findings {
		if _, ok := ruleIndex[f.Detector]; !ok {
			ruleIndex[f.Detector] = len(rules)
			rules = append(rules, sarifRule{ID: f.Detector, Name: f.Detector})
		}
	}

	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "dbmapper", Rules: rules}},
		Results: []sarifResult{},
	}
	for _, f := range findings {
		msg := f.Description
		if msg == "" {
			msg = string(f.Type) + " detected"
		}
		region := sarifRegion{StartLine: f.Line}
		if len(f.Evidence) > 0 {
			region.Snippet = &sarifSnippet{Text: strings.Join(f.Evidence, "\n")}
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:    f.Detector,
			RuleIndex: ruleIndex[f.Detector],
			Level:     confidenceToLevel(f.Confidence),
			Message:   sarifMessage{Text: msg},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Path},
					Region:           region,
				},
			}},
		})
	}
	doc := sarif{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
