package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PendingFile is a fully written temporary file waiting to replace its
// destination. Exactly one of Commit or Discard must be called.
type PendingFile struct {
	path string
	tmp  string
}

// Path returns the destination the file is committed to.
func (p *PendingFile) Path() string {
	return p.path
}

// PrepareFile renders content into a temporary file next to path. Nothing
// at path changes until Commit.
func PrepareFile(path string, render func(w io.Writer) error) (_ *PendingFile, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = render(tmp); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to set mode on %s: %w", tmp.Name(), err)
	}
	return &PendingFile{path: path, tmp: tmp.Name()}, nil
}

// Commit renames the temporary file into place.
func (p *PendingFile) Commit() error {
	if err := os.Rename(p.tmp, p.path); err != nil {
		os.Remove(p.tmp)
		return fmt.Errorf("failed to move %s into place: %w", p.path, err)
	}
	return nil
}

// Discard removes the temporary file and leaves path untouched.
func (p *PendingFile) Discard() {
	os.Remove(p.tmp)
}

// WriteFileAtomic renders content to path through a temporary file in the
// same directory that is renamed into place once complete. On error path is
// left untouched.
func WriteFileAtomic(path string, render func(w io.Writer) error) error {
	p, err := PrepareFile(path, render)
	if err != nil {
		return err
	}
	return p.Commit()
}

// CommitAll renames the pending files into place in order. After a failed
// rename the remaining files are discarded.
func CommitAll(files ...*PendingFile) error {
	for i, f := range files {
		if err := f.Commit(); err != nil {
			DiscardAll(files[i+1:]...)
			return err
		}
	}
	return nil
}

// DiscardAll discards every non-nil pending file.
func DiscardAll(files ...*PendingFile) {
	for _, f := range files {
		if f != nil {
			f.Discard()
		}
	}
}
