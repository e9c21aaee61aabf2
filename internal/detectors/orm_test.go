package detectors

import "testing"

func TestORMModelDjango(t *testing.T) {
	data := []byte("from django.db import models\n\nclass User(models.Model):\n    pass\n")
	fs := ORMModel("app/models.py", data)
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	if fs[0].Framework != "django" || fs[0].Line != 3 || fs[0].Confidence != 0.95 {
		t.Fatalf("unexpected finding: %+v", fs[0])
	}
}

func TestORMModelNonPython(t *testing.T) {
	data := []byte("class User(models.Model):\n")
	if fs := ORMModel("app/models.js", data); len(fs) != 0 {
		t.Fatalf("only .py files should match: %+v", fs)
	}
}

func TestORMModelSQLAlchemy(t *testing.T) {
	data := []byte("class User(Base):\n    __tablename__ = 'users'\n")
	fs := ORMModel("models.py", data)
	if len(fs) != 1 || fs[0].Framework != "sqlalchemy" {
		t.Fatalf("unexpected findings: %+v", fs)
	}
}
