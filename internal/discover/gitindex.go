package discover

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// gitIndexTimeout bounds the version-control query; large repositories can
// make ls-files slow, and a hung git must never hang discovery.
const gitIndexTimeout = 60 * time.Second

// gitIndexFiles returns the absolute paths of all files tracked in the
// repository index. A nil slice means the fast path is unavailable (git
// missing, not a repository, or timeout) and the caller should fall back
// to filesystem traversal.
func gitIndexFiles(root string) []string {
	ctx, cancel := context.WithTimeout(context.Background(), gitIndexTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "-C", root, "ls-files", "--cached")
	out, err := cmd.Output()
	if err != nil {
		log.Debug().Err(err).Str("root", root).Msg("git ls-files unavailable, falling back to walk")
		return nil
	}

	var files []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(root, line))
	}
	return files
}
