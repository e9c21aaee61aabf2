package detectors

import "testing"

func TestRawSQL(t *testing.T) {
	data := []byte("q := `SELECT id, name FROM users WHERE id = ?`\n")
	fs := RawSQL("store.go", data)
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	if fs[0].SQLType != "SELECT" || fs[0].Confidence != 0.8 {
		t.Fatalf("unexpected finding: %+v", fs[0])
	}
}

func TestRawSQLKeywordNormalization(t *testing.T) {
	fs := RawSQL("schema.go", []byte("create   table users (id int)\n"))
	if len(fs) != 1 || fs[0].SQLType != "CREATE TABLE" {
		t.Fatalf("keyword not normalized: %+v", fs)
	}
}

func TestRawSQLMigrationSuppression(t *testing.T) {
	data := []byte("CREATE TABLE users (id serial primary key);\n")
	if fs := RawSQL("migrations/0001_initial.py", data); len(fs) != 0 {
		t.Fatalf("migration files must not yield raw_sql: %+v", fs)
	}
}

func TestRawSQLConfigSuppression(t *testing.T) {
	data := []byte("query: SELECT * FROM users\n")
	if fs := RawSQL("pipeline.yaml", data); len(fs) != 0 {
		t.Fatalf("config files must not yield raw_sql: %+v", fs)
	}
}
