// Package dump opens SQL dumps for streaming import, decompressing on the
// fly. The decompressed SQL never touches the disk: the reader goes straight
// into the mysql container's stdin.
package dump

import (
	"archive/zip"
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"setup-magento/internal/logger"
)

// Open routes to the appropriate reader based on the dump's extension.
// Supported: plain .sql, .sql.gz, .sql.bz2, .sql.xz, and .sql inside .7z or
// .zip archives (the first .sql entry wins).
func Open(path string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(path, ".sql"):
		logger.Debug("[DEBUG] Dump: plain SQL, no decompression\n")
		return os.Open(path)
	case strings.HasSuffix(path, ".gz"):
		logger.Debug("[DEBUG] Dump: compression type is gzip\n")
		return openGzip(path)
	case strings.HasSuffix(path, ".bz2"):
		logger.Debug("[DEBUG] Dump: compression type is bzip2\n")
		return openBzip2(path)
	case strings.HasSuffix(path, ".xz"):
		logger.Debug("[DEBUG] Dump: compression type is xz\n")
		return openXZ(path)
	case strings.HasSuffix(path, ".7z"):
		logger.Debug("[DEBUG] Dump: compression type is 7z\n")
		return open7z(path)
	case strings.HasSuffix(path, ".zip"):
		logger.Debug("[DEBUG] Dump: compression type is zip\n")
		return openZip(path)
	default:
		return nil, fmt.Errorf("unsupported dump format: %s", path)
	}
}

// reader bundles a decompression stream with everything that must be closed
// behind it (the archive handle, the underlying file).
type reader struct {
	io.Reader
	closers []io.Closer
}

func (r *reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &reader{Reader: gr, closers: []io.Closer{gr, f}}, nil
}

func openBzip2(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &reader{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
}

func openXZ(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	xzr, err := xz.NewReader(f, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &reader{Reader: xzr, closers: []io.Closer{f}}, nil
}

func open7z(path string) (io.ReadCloser, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".sql") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, err
		}
		return &reader{Reader: rc, closers: []io.Closer{rc, r}}, nil
	}
	r.Close()
	return nil, fmt.Errorf("no .sql entry found in %s", path)
}

func openZip(path string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".sql") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, err
		}
		return &reader{Reader: rc, closers: []io.Closer{rc, r}}, nil
	}
	r.Close()
	return nil, fmt.Errorf("no .sql entry found in %s", path)
}
