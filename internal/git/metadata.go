// Package git reads repository metadata attached to scan results. All
// lookups are best-effort: a non-repository root yields empty metadata,
// never an error.
package git

import (
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog/log"
)

// Metadata identifies the repository state a scan ran against.
type Metadata struct {
	Remote string `json:"remote,omitempty"` // owner/name when derivable, else raw URL
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// Describe collects remote, branch and commit for the repository at root.
// Every field degrades independently to the empty string.
func Describe(root string) Metadata {
	repo, err := gogit.PlainOpen(root)
	if err != nil {
		log.Debug().Err(err).Str("root", root).Msg("not a git repository")
		return Metadata{}
	}

	var md Metadata
	if remote, err := repo.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			md.Remote = shortRemote(urls[0])
		}
	}
	if head, err := repo.Head(); err == nil {
		md.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			md.Branch = head.Name().Short()
		}
	}
	return md
}

// shortRemote reduces a remote URL to owner/name when the URL has a
// recognizable host path, otherwise returns the trimmed URL.
func shortRemote(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	// scp-like syntax git@host:owner/name
	if !strings.Contains(s, "://") {
		if i := strings.LastIndex(s, ":"); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}
