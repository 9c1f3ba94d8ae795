package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/arxharvest"
)

// Ensure PageArchive implements arxharvest.PageArchive at compile time.
var _ arxharvest.PageArchive = (*PageArchive)(nil)

// PageArchive stores raw listing pages with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on
// Commit.
type PageArchive struct {
	dir string
}

// NewPageArchive creates a new PageArchive.
// Pages are staged in dir.tmp and moved to dir on Commit.
func NewPageArchive(dir string) *PageArchive {
	return &PageArchive{dir: dir}
}

func (a *PageArchive) tempDir() string {
	return a.dir + ".tmp"
}

// SavePage stages one page body, named by the offset it was requested at.
func (a *PageArchive) SavePage(ctx context.Context, offset int, body string) error {
	if offset < 0 {
		return arxharvest.Errorf(arxharvest.EINVALID, "negative page offset %d", offset)
	}

	if err := os.MkdirAll(a.tempDir(), 0755); err != nil {
		return err
	}

	name := fmt.Sprintf("page-%06d.html", offset)
	return os.WriteFile(filepath.Join(a.tempDir(), name), []byte(body), 0644)
}

// Commit moves the staged pages into place, replacing any previous
// archive. Committing with nothing staged is a no-op.
func (a *PageArchive) Commit() error {
	if _, err := os.Stat(a.tempDir()); os.IsNotExist(err) {
		return nil
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(a.dir); err != nil {
		return err
	}

	return os.Rename(a.tempDir(), a.dir)
}

// Abort discards the staged pages.
func (a *PageArchive) Abort() error {
	return os.RemoveAll(a.tempDir())
}
