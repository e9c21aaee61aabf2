package discover

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/rs/zerolog/log"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/dbmapper/dbmapper/internal/types"
)

// MaxFileSize is the per-file size cap; larger files are silently excluded
// to keep detection memory bounded.
const MaxFileSize int64 = 50 * 1024 * 1024

// ErrInvalidRepo is returned when the repository root does not exist or is
// not a directory.
var ErrInvalidRepo = errors.New("repository path does not exist or is not a directory")

// Config controls file discovery scope and filtering.
type Config struct {
	Root            string
	IncludePatterns []string // glob patterns; nil or ["**/*"] means everything
	ExcludePatterns []string // user exclude globs, added on top of defaults
	Languages       []string // language allow-list; empty means all known
	DefaultExcludes bool     // apply DefaultExcludePatterns
}

// Discover enumerates every file eligible for detection under cfg.Root in
// encounter order. It prefers the git index fast path and falls back to a
// full filesystem traversal when the index is unavailable.
func Discover(cfg Config) ([]types.FileEntry, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepo, cfg.Root)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepo, cfg.Root)
	}

	includes := cfg.IncludePatterns
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	narrowed := len(includes) != 1 || includes[0] != "**/*"

	var excludePatterns []string
	if cfg.DefaultExcludes {
		excludePatterns = append(excludePatterns, DefaultExcludePatterns...)
	}
	excludePatterns = append(excludePatterns, cfg.ExcludePatterns...)
	excludes := partitionExcludes(excludePatterns)

	allow := buildAllowSet(cfg.Languages)

	candidates := gitIndexFiles(root)
	if candidates == nil {
		candidates, err = walkCandidates(root, includes, excludes)
		if err != nil {
			return nil, err
		}
	} else {
		log.Debug().Int("candidates", len(candidates)).Msg("using git index fast path")
	}

	var entries []types.FileEntry
	for _, path := range candidates {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if excludes.excludedExt(path) {
			continue
		}
		if excludes.excludedDir(rel) {
			continue
		}
		// the git index may still list files deleted from the working tree
		fi, err := os.Stat(path)
		if err != nil || fi.IsDir() {
			continue
		}
		if excludes.excludedGlob(rel) {
			continue
		}
		if narrowed && !matchAnyGlob(rel, includes) {
			continue
		}
		if !allowedName(path, allow) {
			continue
		}
		if fi.Size() > MaxFileSize {
			continue
		}
		if looksBinary(path) {
			continue
		}
		entries = append(entries, types.FileEntry{
			Path:     path,
			Rel:      filepath.ToSlash(rel),
			Size:     fi.Size(),
			Language: LanguageFor(path),
		})
	}
	log.Debug().Int("eligible", len(entries)).Str("root", root).Msg("discovery complete")
	return entries, nil
}

// walkCandidates is the filesystem fallback for non-git roots. It honors
// the repository's .gitignore to approximate what the index fast path
// would have listed.
func walkCandidates(root string, includes []string, excludes excludeSet) ([]string, error) {
	var ign *ignore.GitIgnore
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ign = gi
	}

	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if p == root {
				return nil
			}
			if d.Name() == ".git" || excludes.excludedSegment(d.Name()) {
				return filepath.SkipDir
			}
			if ign != nil && ign.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if ign != nil && ign.MatchesPath(rel) {
			return nil
		}
		if !matchAnyGlob(rel, includes) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func allowedName(path string, allow map[string]bool) bool {
	ext := filepath.Ext(path)
	if allow[ext] {
		return true
	}
	return allow[filepath.Base(path)]
}

// looksBinary sniffs the file header for NUL bytes or known binary magic
// (images, media, archives) that slipped past extension filters.
func looksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true // unreadable files are excluded, not reported
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}
	buf = buf[:n]
	for _, b := range buf {
		if b == 0 {
			return true
		}
	}
	if filetype.IsImage(buf) || filetype.IsVideo(buf) || filetype.IsAudio(buf) || filetype.IsArchive(buf) {
		return true
	}
	return false
}
