package folder

import (
	"fmt"
	"os"
	"path/filepath"
)

// planner resolves output paths inside one folder.
//
// In dry-run mode nothing is written, so paths handed out earlier in the run
// are remembered and treated as taken.
type planner struct {
	dir      string
	dryRun   bool
	reserved map[string]bool
}

func newPlanner(dir string, dryRun bool) *planner {
	return &planner{dir: dir, dryRun: dryRun, reserved: make(map[string]bool)}
}

func (pl *planner) path(name string) string {
	return filepath.Join(pl.dir, name)
}

func (pl *planner) reserve(path string) {
	if pl.dryRun {
		pl.reserved[path] = true
	}
}

// unique returns <stem><ext> in the folder, or the first free
// <stem>_N<ext> for N = 2, 3, ... when it is taken. self is the file being
// renamed, if any; a candidate that is self counts as free.
func (pl *planner) unique(stem, ext, self string) string {
	return UniquePath(pl.dir, stem, ext, self, func(p string) bool { return pl.reserved[p] })
}

// UniquePath probes for a free path in dir. A path is taken when something
// exists there that is not self, or when reserved reports it. reserved may
// be nil.
func UniquePath(dir, stem, ext, self string, reserved func(string) bool) string {
	candidate := filepath.Join(dir, stem+ext)
	for i := 2; ; i++ {
		if isFree(candidate, self, reserved) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}

func isFree(candidate, self string, reserved func(string) bool) bool {
	if reserved != nil && reserved(candidate) {
		return false
	}
	info, err := os.Lstat(candidate)
	if err != nil {
		// Paths that cannot be examined are left for the write to report.
		return true
	}
	if self == "" {
		return false
	}
	if candidate == self {
		return true
	}
	// Case-insensitive file systems report a differently cased name of the
	// source as existing.
	selfInfo, err := os.Lstat(self)
	return err == nil && os.SameFile(info, selfInfo)
}
