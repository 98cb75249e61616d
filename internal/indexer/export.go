package indexer

import (
	"archive/tar"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"codemap/internal/errors"
	"codemap/internal/model"
)

// ExportBundle writes a tar+zstd archive of the root and per-directory
// .index.md files, with archive paths relative to the project root. The
// indexes must have been generated first.
func ExportBundle(scan *model.ProjectScan, root string, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return errors.NewMapError(errors.IndexWriteFailed, "failed to create bundle file", err, nil)
	}
	defer f.Close() //nolint:errcheck // Best effort cleanup

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return errors.NewMapError(errors.InternalError, "failed to create zstd writer", err, nil)
	}
	tw := tar.NewWriter(zw)

	indexPaths := []string{filepath.Join(root, IndexFileName)}
	for _, module := range scan.Modules {
		indexPaths = append(indexPaths, filepath.Join(module.Path, IndexFileName))
	}

	for _, path := range indexPaths {
		if err := addFile(tw, path, root); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return errors.NewMapError(errors.InternalError, "failed to finalize bundle tar", err, nil)
	}
	if err := zw.Close(); err != nil {
		return errors.NewMapError(errors.InternalError, "failed to finalize bundle compression", err, nil)
	}
	return f.Close()
}

func addFile(tw *tar.Writer, path, root string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		// Index not generated for this directory; skip rather than fail
		// the whole bundle.
		return nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	hdr := &tar.Header{
		Name: filepath.ToSlash(rel),
		Mode: 0o644,
		Size: int64(len(data)),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return errors.NewMapError(errors.InternalError, "failed to write bundle entry header", err, nil)
	}
	if _, err := tw.Write(data); err != nil {
		return errors.NewMapError(errors.InternalError, "failed to write bundle entry", err, nil)
	}
	return nil
}
