package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dbmapper/dbmapper/internal/engine"
	"github.com/dbmapper/dbmapper/internal/types"
)

func sampleResult() engine.Result {
	return engine.Result{
		RunID:        "8b39f2de-0000-4000-8000-000000000000",
		FilesScanned: 42,
		Workers:      8,
		Duration:     1200 * time.Millisecond,
		Findings: []types.Finding{
			{
				ID: "f-0001", Type: types.TypeConnection, Provider: "postgresql",
				Detector: "connection", Path: "app/settings.py", Line: 3,
				Evidence:   []string{`url = "postgres://svc:...@db:5432/billing"`},
				Confidence: 0.95, Fingerprint: "a1b2c3d4e5f60718",
				Description: "Postgresql connection string referenced in app/settings.py at line 3.",
			},
			{
				ID: "f-0003", Type: types.TypeRawSQL, SQLType: "SELECT",
				Detector: "raw_sql", Path: "app/dao.py", Line: 9,
				Evidence:   []string{"SELECT id FROM invoices"},
				Confidence: 0.8, Fingerprint: "1111222233334444",
			},
		},
	}
}

func TestWriteJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var env Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	require.Equal(t, "8b39f2de-0000-4000-8000-000000000000", env.RunID)
	require.Equal(t, 42, env.FilesScanned)
	require.Equal(t, int64(1200), env.DurationMS)
	require.Len(t, env.Findings, 2)
	require.Equal(t, "f-0001", env.Findings[0].ID)
	require.Equal(t, "app/settings.py", env.Findings[0].Path)
}

func TestWriteJSONEmptyFindingsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, engine.Result{RunID: "x"}))
	require.Contains(t, buf.String(), `"findings": []`)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult().Findings))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, "f-0001", rows[1][0])
	require.Equal(t, "connection", rows[1][1])
	require.Equal(t, "3", rows[1][3])
	require.Equal(t, "0.95", rows[1][8])
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, sampleResult().Findings))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph"))
	require.Contains(t, out, `"app/settings.py"`)
	require.Contains(t, out, "f-0001")
	require.Contains(t, out, "->")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleResult()))

	out := buf.String()
	require.Contains(t, out, "<!DOCTYPE html>")
	require.Contains(t, out, "f-0001")
	require.Contains(t, out, "app/settings.py:3")
	require.Contains(t, out, "42 files scanned")
	// evidence is rendered highlighted, not escaped wholesale
	require.NotContains(t, out, "&lt;pre&gt;")
}

func TestWriteFormats(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "dbmap")
	require.NoError(t, WriteFormats(base, []string{"json", "csv", "html", "graph", "sarif"}, sampleResult()))

	for _, ext := range []string{".json", ".csv", ".html", ".dot", ".sarif"} {
		info, err := os.Stat(base + ext)
		require.NoError(t, err, "missing %s output", ext)
		require.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteFormatsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "dbmap")
	err := WriteFormats(base, []string{"json", "xml"}, sampleResult())
	require.Error(t, err)
	require.Contains(t, err.Error(), "xml")
	// validation happens before any file is written
	_, statErr := os.Stat(base + ".json")
	require.True(t, os.IsNotExist(statErr))
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleResult(), PrintOptions{NoColor: true})

	out := buf.String()
	require.Contains(t, out, "f-0001")
	require.Contains(t, out, "app/dao.py:9")
	require.Contains(t, out, "Findings: 2")
	require.Contains(t, out, "connection: 1")
	require.Contains(t, out, "Files scanned: 42")
	require.NotContains(t, out, "\x1b[")
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, engine.Result{FilesScanned: 5}, PrintOptions{NoColor: true})
	require.Contains(t, buf.String(), "No database artifacts found.")
	require.Contains(t, buf.String(), "Findings: 0")
}
