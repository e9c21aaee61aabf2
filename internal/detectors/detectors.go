package detectors

import (
	"fmt"

	"github.com/dbmapper/dbmapper/internal/types"
)

// DetectorFunc inspects file content and returns zero or more findings.
// Implementations must be pure and safe for concurrent use; all shared
// state is limited to package-level compiled patterns.
type DetectorFunc func(path string, data []byte) []types.Finding

// Detector is a named entry in the registry.
type Detector struct {
	Name string
	Run  DetectorFunc
}

// defaults lists the built-in detectors in the fixed sub-pass order used
// per file: connection, env-var, ORM, raw SQL, migration, schema change,
// language-specific, secret. Findings for a single file are appended in
// this order.
var defaults = []Detector{
	{Name: "connection", Run: Connection},
	{Name: "env_var", Run: EnvVar},
	{Name: "orm_model", Run: ORMModel},
	{Name: "raw_sql", Run: RawSQL},
	{Name: "migration", Run: Migration},
	{Name: "schema_change", Run: SchemaChange},
	{Name: "csharp", Run: CSharp},
	{Name: "php", Run: PHP},
	{Name: "secret", Run: Secret},
}

// plugins are optional language heuristics enabled with --plugins.
var plugins = map[string]Detector{
	"java": {Name: "java", Run: JavaJPA},
	"ruby": {Name: "ruby", Run: RubyActiveRecord},
}

// Defaults returns the built-in detector set in sub-pass order.
func Defaults() []Detector {
	out := make([]Detector, len(defaults))
	copy(out, defaults)
	return out
}

// WithPlugins appends the named plugin detectors to the default set.
// Unknown plugin names are an error.
func WithPlugins(names []string) ([]Detector, error) {
	out := Defaults()
	for _, n := range names {
		p, ok := plugins[n]
		if !ok {
			return nil, fmt.Errorf("unknown detector plugin %q", n)
		}
		out = append(out, p)
	}
	return out, nil
}

// Names returns the registry names of the given detectors.
func Names(dets []Detector) []string {
	out := make([]string, len(dets))
	for i, d := range dets {
		out[i] = d.Name
	}
	return out
}

// PluginNames returns the available plugin detector names.
func PluginNames() []string {
	out := make([]string, 0, len(plugins))
	for n := range plugins {
		out = append(out, n)
	}
	return out
}

// Run invokes every detector against one file, preserving intra-file
// sub-pass ordering.
func Run(dets []Detector, path string, data []byte) []types.Finding {
	var out []types.Finding
	for _, d := range dets {
		out = append(out, d.Run(path, data)...)
	}
	return out
}
