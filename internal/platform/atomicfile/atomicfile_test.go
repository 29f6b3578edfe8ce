package atomicfile_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"studytime/internal/platform/atomicfile"
)

func TestWriteFileReplacesContent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "data.csv")
	if err := atomicfile.WriteFile(path, []byte("one\n"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := atomicfile.WriteFile(path, []byte("two\n"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "two\n" {
		t.Fatalf("expected replaced content, got %q", b)
	}
}

func TestWriteKeepsOldContentWhenFillFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := atomicfile.WriteFile(path, []byte("keep\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	boom := errors.New("boom")
	err := atomicfile.Write(path, 0o644, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fill error, got %v", err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "keep\n" {
		t.Fatalf("original content must survive, got %q", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp file must be cleaned up, dir has %d entries", len(entries))
	}
}
