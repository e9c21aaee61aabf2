package detectors

import "testing"

// Sub-pass order within a file is fixed: a file containing both a DSN and
// a secret must list the connection finding first.
func TestRunSubPassOrder(t *testing.T) {
	data := []byte("db_password = hunter22\nurl = postgresql://u:p@h/db\n")
	fs := Run(Defaults(), "conf.ini", data)
	if len(fs) < 2 {
		t.Fatalf("expected at least 2 findings, got %+v", fs)
	}
	if fs[0].Type != "connection" {
		t.Fatalf("connection sub-pass must come first, got %+v", fs[0])
	}
	if fs[len(fs)-1].Type != "secret" {
		t.Fatalf("secret sub-pass must come last, got %+v", fs[len(fs)-1])
	}
}

func TestWithPlugins(t *testing.T) {
	dets, err := WithPlugins([]string{"java", "ruby"})
	if err != nil {
		t.Fatal(err)
	}
	if len(dets) != len(Defaults())+2 {
		t.Fatalf("plugins not appended: %v", Names(dets))
	}
	if _, err := WithPlugins([]string{"cobol"}); err == nil {
		t.Fatal("unknown plugin must error")
	}
}

func TestConfidenceBounds(t *testing.T) {
	samples := map[string][]byte{
		"a.py":       []byte("postgres://u:p@h/db\nclass M(models.Model):\n    pass\nSELECT * FROM t\n"),
		".env":       []byte("DATABASE_URL=mysql://u:p@h/db\nDB_PASSWORD=re4lsecret\n"),
		"V1__up.sql": []byte("ALTER TABLE t ADD COLUMN c int;\n"),
		"Db.cs":      []byte("class C : DbContext {}\n"),
		"db.php":     []byte("mysqli_connect($h);\n"),
	}
	for path, data := range samples {
		for _, f := range Run(Defaults(), path, data) {
			if f.Confidence < 0 || f.Confidence > 1 {
				t.Fatalf("confidence out of range: %+v", f)
			}
		}
	}
}
