package dbmapper

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dbmapper/dbmapper/internal/executor"
)

func encodeRequests(t *testing.T, reqs []executor.WorkerRequest) *bytes.Buffer {
	t.Helper()
	var in bytes.Buffer
	enc := json.NewEncoder(&in)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}
	return &in
}

func TestWorkerProtocol(t *testing.T) {
	dir := t.TempDir()
	withFinding := filepath.Join(dir, "settings.py")
	if err := os.WriteFile(withFinding, []byte("url = \"postgres://svc:pw@db:5432/app\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	clean := filepath.Join(dir, "empty.py")
	if err := os.WriteFile(clean, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := encodeRequests(t, []executor.WorkerRequest{
		{Path: withFinding, Rel: "settings.py"},
		{Path: clean, Rel: "empty.py"},
		{Path: filepath.Join(dir, "missing.py"), Rel: "missing.py"},
	})

	var out bytes.Buffer
	if err := runWorker(in, &out); err != nil {
		t.Fatalf("runWorker: %v", err)
	}

	var resps []executor.WorkerResponse
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var resp executor.WorkerResponse
		if err := json.Unmarshal(sc.Bytes(), &resp); err != nil {
			t.Fatalf("malformed response line: %v", err)
		}
		resps = append(resps, resp)
	}
	if len(resps) != 3 {
		t.Fatalf("expected one response per request, got %d", len(resps))
	}

	if len(resps[0].Findings) == 0 {
		t.Fatal("expected findings for the connection string file")
	}
	if resps[0].Findings[0].Path != "settings.py" {
		t.Fatalf("findings must carry the relative path, got %q", resps[0].Findings[0].Path)
	}
	if len(resps[1].Findings) != 0 {
		t.Fatalf("clean file must yield no findings, got %d", len(resps[1].Findings))
	}
	// unreadable files degrade to an empty response, not a protocol error
	if len(resps[2].Findings) != 0 {
		t.Fatal("missing file must yield no findings")
	}
}

func TestWorkerMalformedRequestLine(t *testing.T) {
	in := bytes.NewBufferString("{not json}\n")
	var out bytes.Buffer
	if err := runWorker(in, &out); err != nil {
		t.Fatalf("runWorker must survive malformed input: %v", err)
	}
	var resp executor.WorkerResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("expected a JSON error response: %v", err)
	}
	if resp.Err == "" {
		t.Fatal("expected error field set for malformed request")
	}
}

func TestWorkerEmptyInput(t *testing.T) {
	var out bytes.Buffer
	if err := runWorker(bytes.NewBuffer(nil), &out); err != nil {
		t.Fatalf("runWorker on empty input: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("no requests must produce no responses, got %q", out.String())
	}
}
