package discover

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludePatterns covers binary media, build output, dependency
// trees and test fixtures that are never useful detection targets.
var DefaultExcludePatterns = []string{
	"**/*.jpg", "**/*.jpeg", "**/*.png", "**/*.gif", "**/*.bmp", "**/*.tiff",
	"**/*.exe", "**/*.dll", "**/*.so", "**/*.dylib", "**/*.bin",
	"**/*.zip", "**/*.tar", "**/*.gz", "**/*.rar", "**/*.7z",
	"**/*.pdf", "**/*.doc", "**/*.docx", "**/*.xls", "**/*.xlsx",
	"**/*.mp4", "**/*.avi", "**/*.mov", "**/*.mp3", "**/*.wav",
	"**/*.pyc", "**/__pycache__/**", "**/.git/**", "**/node_modules/**",
	"**/venv/**", "**/.venv/**", "**/env/**", "**/.env/**",
	"**/*.md",
	"**/test/**", "**/tests/**", "**/__tests__/**", "**/spec/**", "**/specs/**",
	"**/*.test.*", "**/*.spec.*", "**/*Test.*", "**/*Spec.*",
	"**/test_*", "**/*_test.*", "**/*_spec.*",
	"**/fixtures/**", "**/mocks/**",
}

// excludeSet holds exclude patterns pre-partitioned into three classes,
// checked cheapest-first: exact extensions, directory segments, and
// general globs.
type excludeSet struct {
	extensions map[string]bool
	dirs       []string
	globs      []string
}

// partitionExcludes splits patterns into the three exclude classes.
// "**/*.jpg" style patterns become extension checks, "**/node_modules/**"
// style patterns become directory-segment checks, everything else stays a
// glob matched against the relative path.
func partitionExcludes(patterns []string) excludeSet {
	set := excludeSet{extensions: map[string]bool{}}
	for _, p := range patterns {
		switch {
		case strings.HasPrefix(p, "**/*.") && !strings.ContainsAny(p[len("**/*."):], "*?["):
			set.extensions["."+p[len("**/*."):]] = true
		case strings.HasSuffix(p, "/**"):
			seg := strings.TrimSuffix(p, "/**")
			seg = strings.TrimPrefix(seg, "**/")
			if seg != "" {
				set.dirs = append(set.dirs, seg)
			}
		default:
			set.globs = append(set.globs, p)
		}
	}
	return set
}

func (s excludeSet) excludedExt(path string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(path))]
}

// excludedDir reports whether any directory component of rel matches an
// excluded segment. The final element is the filename, never a directory:
// a file named .env must not match the **/.env/** pattern.
func (s excludeSet) excludedDir(rel string) bool {
	if len(s.dirs) == 0 {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, part := range parts[:len(parts)-1] {
		if s.excludedSegment(part) {
			return true
		}
	}
	return false
}

func (s excludeSet) excludedSegment(name string) bool {
	for _, d := range s.dirs {
		if name == d {
			return true
		}
	}
	return false
}

func (s excludeSet) excludedGlob(rel string) bool {
	rp := filepath.ToSlash(rel)
	for _, g := range s.globs {
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rp)); ok {
			return true
		}
	}
	return false
}

func matchAnyGlob(rel string, globs []string) bool {
	rp := filepath.ToSlash(rel)
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
	}
	return false
}
