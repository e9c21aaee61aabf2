// Package describe attaches human-readable descriptions to findings as a
// second, independently parallelized batch stage. Batching amortizes pool
// setup once per run instead of once per file.
package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/wandb/parallel"

	"github.com/dbmapper/dbmapper/internal/types"
)

// maxWorkers bounds the enrichment pool.
const maxWorkers = 32

// Describe returns the description text for one finding. It is pure and
// safe to call concurrently.
func Describe(f types.Finding) string {
	switch f.Type {
	case types.TypeConnection:
		provider := f.Provider
		if provider == "" {
			provider = "database"
		}
		return fmt.Sprintf("%s connection string referenced in %s at line %d. Embedded connection strings expose endpoints and often credentials; prefer secret storage and runtime injection.", titleCase(provider), f.Path, f.Line)
	case types.TypeORMModel:
		fw := f.Framework
		if fw == "" {
			fw = "ORM"
		}
		return fmt.Sprintf("%s model definition in %s at line %d, mapping application objects to a database table.", titleCase(fw), f.Path, f.Line)
	case types.TypeRawSQL:
		return fmt.Sprintf("Raw %s statement embedded in %s at line %d. Inline SQL couples code to schema and bypasses query builders.", f.SQLType, f.Path, f.Line)
	case types.TypeMigration:
		fw := f.Framework
		if fw == "" {
			fw = "schema"
		}
		return fmt.Sprintf("%s migration in %s defining an incremental schema change.", titleCase(fw), f.Path)
	case types.TypeSchemaChange:
		return fmt.Sprintf("Schema-altering %s statement in %s at line %d.", f.SQLType, f.Path, f.Line)
	case types.TypeSecret:
		return fmt.Sprintf("Hard-coded database credential in %s at line %d. Credentials in source control should be rotated and moved to a secret manager.", f.Path, f.Line)
	default:
		return fmt.Sprintf("Database-related artifact in %s at line %d.", f.Path, f.Line)
	}
}

// Enrich fills the Description of every finding in place using a bounded
// worker group. Each description is written exactly once; findings are
// never otherwise mutated.
func Enrich(ctx context.Context, findings []types.Finding) {
	if len(findings) == 0 {
		return
	}
	workers := min(len(findings), maxWorkers)
	group := parallel.Limited(ctx, workers)
	for i := range findings {
		i := i
		group.Go(func(ctx context.Context) {
			findings[i].Description = Describe(findings[i])
		})
	}
	group.Wait()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
