package dbmapper

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// run as subprocess to avoid os.Exit in-process
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "."}, args...)...)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	return out.String(), err
}

func TestCLI_ScanWritesJSONReport(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.py"), []byte("url = \"postgres://svc:pw@db:5432/billing\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(t.TempDir(), "dbmap")

	if _, err := runCLI(t, "scan", "--no-table", "-o", base, "--formats", "json", dir); err != nil {
		t.Fatalf("execute: %v", err)
	}

	b, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("missing json report: %v", err)
	}
	var env struct {
		RunID        string `json:"run_id"`
		FilesScanned int    `json:"files_scanned"`
		Findings     []struct {
			ID         string  `json:"id"`
			Type       string  `json:"type"`
			File       string  `json:"file"`
			Line       int     `json:"line"`
			Confidence float64 `json:"confidence"`
		} `json:"findings"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("envelope json: %v\n%s", err, string(b))
	}
	if env.RunID == "" || env.FilesScanned == 0 {
		t.Fatalf("incomplete envelope: %+v", env)
	}
	if len(env.Findings) == 0 {
		t.Fatal("expected at least one finding for the connection string")
	}
	f := env.Findings[0]
	if f.ID == "" || f.Type != "connection" || f.File != "settings.py" || f.Line != 1 {
		t.Fatalf("unexpected finding shape: %+v", f)
	}
	if f.Confidence < 0.5 || f.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", f.Confidence)
	}
}

func TestCLI_UnknownFormatFails(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(t.TempDir(), "dbmap")
	if _, err := runCLI(t, "scan", "--no-table", "-o", base, "--formats", "xml", dir); err == nil {
		t.Fatal("expected non-zero exit for unknown format")
	}
}

func TestCLI_DetectorsList(t *testing.T) {
	out, err := runCLI(t, "detectors")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"connection", "raw_sql", "migration", "java (plugin)"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("detectors output missing %q:\n%s", want, out)
		}
	}
}
