package discover

import (
	"path/filepath"
	"strings"
)

// languageExtensions maps a language name to the file extensions (or exact
// filenames, e.g. "Dockerfile") that identify it.
var languageExtensions = map[string][]string{
	"python":     {".py", ".pyx", ".pyw"},
	"javascript": {".js", ".jsx", ".ts", ".tsx", ".mjs"},
	"java":       {".java"},
	"csharp":     {".cs", ".vb"},
	"php":        {".php"},
	"ruby":       {".rb"},
	"go":         {".go"},
	"sql":        {".sql"},
	"yaml":       {".yml", ".yaml"},
	"json":       {".json"},
	"xml":        {".xml"},
	"ini":        {".ini", ".cfg", ".conf"},
	"env":        {".env"},
	"docker":     {"Dockerfile", ".dockerfile"},
	"terraform":  {".tf", ".tfvars"},
}

// configLanguages are always allowed regardless of the language filter so
// connection-string and secret detection still covers config files.
var configLanguages = []string{"yaml", "json", "ini", "env", "docker", "terraform"}

// Languages returns the names of all known languages.
func Languages() []string {
	out := make([]string, 0, len(languageExtensions))
	for l := range languageExtensions {
		out = append(out, l)
	}
	return out
}

// buildAllowSet returns the set of extensions and exact filenames eligible
// for scanning given the requested languages (empty means all known).
func buildAllowSet(languages []string) map[string]bool {
	allow := map[string]bool{}
	if len(languages) > 0 {
		for _, lang := range languages {
			for _, ext := range languageExtensions[lang] {
				allow[ext] = true
			}
		}
	} else {
		for _, exts := range languageExtensions {
			for _, ext := range exts {
				allow[ext] = true
			}
		}
	}
	for _, lang := range configLanguages {
		for _, ext := range languageExtensions[lang] {
			allow[ext] = true
		}
	}
	return allow
}

// LanguageFor infers the language of a path from its extension, falling
// back to exact filename matches like Dockerfile. Returns "" when unknown.
func LanguageFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	name := filepath.Base(path)
	for lang, exts := range languageExtensions {
		for _, e := range exts {
			if e == ext || e == name {
				return lang
			}
		}
	}
	return ""
}
