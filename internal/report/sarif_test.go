package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dbmapper/dbmapper/internal/types"
)

func TestWriteSARIFStructure(t *testing.T) {
	fs := []types.Finding{
		{ID: "f-0001", Path: "a/settings.py", Line: 3, Detector: "connection", Type: types.TypeConnection, Evidence: []string{"postgres://..."}, Confidence: 0.95},
		{ID: "f-0002", Path: "b/dao.py", Line: 9, Detector: "raw_sql", Type: types.TypeRawSQL, Evidence: []string{"SELECT 1"}, Confidence: 0.8},
		{ID: "f-0003", Path: "b/dao.py", Line: 20, Detector: "raw_sql", Type: types.TypeRawSQL, Confidence: 0.6},
	}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, fs); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex int    `json:"ruleIndex"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
							Snippet   *struct {
								Text string `json:"text"`
							} `json:"snippet"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if doc.Version != "2.1.0" {
		t.Fatalf("expected SARIF 2.1.0, got %v", doc.Version)
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(doc.Runs))
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "dbmapper" {
		t.Fatalf("unexpected driver name %q", run.Tool.Driver.Name)
	}
	// one rule per distinct detector
	if len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}

	first := run.Results[0]
	if first.RuleID != "connection" || first.Level != "error" {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if run.Tool.Driver.Rules[first.RuleIndex].ID != first.RuleID {
		t.Fatal("ruleIndex does not point at the result's rule")
	}
	loc := first.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "a/settings.py" || loc.Region.StartLine != 3 {
		t.Fatalf("unexpected location: %+v", loc)
	}
	if loc.Region.Snippet == nil || loc.Region.Snippet.Text == "" {
		t.Fatal("expected evidence snippet in region")
	}

	if run.Results[1].Level != "warning" {
		t.Fatalf("0.8 should map to warning, got %q", run.Results[1].Level)
	}
	if run.Results[2].Level != "note" {
		t.Fatalf("0.6 should map to note, got %q", run.Results[2].Level)
	}
	if run.Results[2].Locations[0].PhysicalLocation.Region.Snippet != nil {
		t.Fatal("no evidence must mean no snippet")
	}
}

func TestWriteSARIFNoFindings(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, nil); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	runs := doc["runs"].([]any)
	results := runs[0].(map[string]any)["results"]
	if results == nil {
		t.Fatal("results must be an empty array, not null")
	}
}
