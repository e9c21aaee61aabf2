package detectors

import (
	"regexp"

	"github.com/dbmapper/dbmapper/internal/types"
)

var (
	djangoModelPattern = regexp.MustCompile(`class\s+(\w+)\s*\([^)]*models\.Model[^)]*\)`)
	sqlalchemyPattern  = regexp.MustCompile(`class\s+(\w+)\s*\([^)]*(?:declarative_base\(\)|Base|db\.Model)[^)]*\)`)
	sqlalchemyTable    = regexp.MustCompile(`__tablename__\s*=`)
)

// ORMModel reports Python ORM model declarations (Django, SQLAlchemy).
func ORMModel(path string, data []byte) []types.Finding {
	if !hasSuffixFold(path, ".py") {
		return nil
	}
	var out []types.Finding
	for _, loc := range djangoModelPattern.FindAllSubmatchIndex(data, -1) {
		name := string(data[loc[2]:loc[3]])
		out = append(out, types.Finding{
			Type:       types.TypeORMModel,
			Detector:   "orm_model",
			Framework:  "django",
			Path:       path,
			Line:       lineAt(data, loc[0]),
			Evidence:   []string{"class " + name + "(models.Model):"},
			Confidence: 0.95,
		})
	}
	// SQLAlchemy declarations are weaker evidence unless the class body
	// also sets __tablename__.
	if sqlalchemyTable.Find(data) != nil {
		for _, loc := range sqlalchemyPattern.FindAllSubmatchIndex(data, -1) {
			name := string(data[loc[2]:loc[3]])
			out = append(out, types.Finding{
				Type:       types.TypeORMModel,
				Detector:   "orm_model",
				Framework:  "sqlalchemy",
				Path:       path,
				Line:       lineAt(data, loc[0]),
				Evidence:   []string{trimEvidence("class " + name)},
				Confidence: 0.8,
			})
		}
	}
	return out
}
