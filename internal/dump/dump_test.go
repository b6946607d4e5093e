package dump

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const sample = "CREATE TABLE example (id INT);\n"

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestOpenPlainSQL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.sql")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := readAll(t, path); got != sample {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.sql.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(sample)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := readAll(t, path); got != sample {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestOpenZipPicksSQLEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	// A non-SQL entry first; Open must skip it.
	w, err := zw.Create("README.txt")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte("not sql")); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	w, err = zw.Create("shop.sql")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte(sample)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := readAll(t, path); got != sample {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestOpenZipWithoutSQLEntryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("README.txt")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte("not sql")); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("zip without .sql entry must fail")
	}
}

func TestOpenRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.rar")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("unknown format must be rejected")
	}
}
