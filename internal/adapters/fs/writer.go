package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer persists bundler output, skipping files whose content hash matches the
// last recorded build and whose on-disk copy is intact.
type Writer struct {
	hasher *Hasher
	store  ports.BuildInfoStore
	now    func() time.Time
}

// NewWriter creates a new Writer recording hashes in store.
func NewWriter(hasher *Hasher, store ports.BuildInfoStore) *Writer {
	return &Writer{
		hasher: hasher,
		store:  store,
		now:    time.Now,
	}
}

// Write stores the changed files and returns the paths it actually wrote, in
// input order. A file whose bytes are already on disk is recorded but not
// reported.
func (w *Writer) Write(files []domain.OutputFile, mode domain.CompileMode) ([]string, error) {
	var written []string
	for _, file := range files {
		hash := w.hasher.HashBytes(file.Contents)

		unchanged, err := w.unchanged(file.Path, hash)
		if err != nil {
			return written, err
		}
		if unchanged {
			continue
		}

		wrote, err := writeFile(file)
		if err != nil {
			return written, err
		}

		if err := w.store.Put(domain.BuildInfo{
			Path:      file.Path,
			Hash:      hash,
			Mode:      mode.String(),
			Timestamp: w.now(),
		}); err != nil {
			return written, zerr.With(zerr.Wrap(err, "failed to record build info"), "path", file.Path)
		}
		if wrote {
			written = append(written, file.Path)
		}
	}
	return written, nil
}

func (w *Writer) unchanged(path, hash string) (bool, error) {
	info, err := w.store.Get(path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to read build info"), "path", path)
	}
	if info == nil || info.Hash != hash {
		return false, nil
	}

	// The store can outlive the files it describes, e.g. after the output directory was cleaned.
	onDisk, err := w.hasher.HashFile(path)
	if err != nil {
		return false, nil //nolint:nilerr // A missing or unreadable file is rewritten
	}
	return onDisk == hash, nil
}

// writeFile reports whether file.Path was written.
func writeFile(file domain.OutputFile) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(file.Path), 0o750); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", file.Path)
	}

	// Skip the write when identical bytes are already present, preserving mtimes for file watchers.
	//nolint:gosec // Path comes from the bundler's output list
	if existing, err := os.ReadFile(file.Path); err == nil && bytes.Equal(existing, file.Contents) {
		return false, nil
	}

	//nolint:gosec // Output files are meant to be world-readable
	if err := os.WriteFile(file.Path, file.Contents, 0o644); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to write output file"), "path", file.Path)
	}
	return true, nil
}
