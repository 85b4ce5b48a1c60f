package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")

	err := WriteFileAtomic(dst, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello world")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world" {
		t.Fatalf("content mismatch: got %q", got)
	}
	assertOnlyFiles(t, dir, "out.txt")
}

func TestWriteFileAtomicTruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(dst, []byte("a much longer previous body"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAtomic(dst, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestWriteFileAtomicCallbackErrorKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(dst, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := WriteFileAtomic(dst, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Fatalf("target modified: %q", got)
	}
	assertOnlyFiles(t, dir, "out.txt")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "out.txt")
	err := WriteFileAtomic(dst, 0o644, func(io.Writer) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file, stat err = %v", statErr)
	}
}

func TestLock(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	unlock, err := Lock(target)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(LockPath(target)); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}
	if _, err := Lock(target); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked for second lock, got %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(LockPath(target)); !os.IsNotExist(err) {
		t.Fatalf("expected lock file removed, stat err = %v", err)
	}

	unlock, err = Lock(target)
	if err != nil {
		t.Fatalf("relock after release: %v", err)
	}
	_ = unlock()
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(names) {
		var got []string
		for _, e := range entries {
			got = append(got, e.Name())
		}
		t.Fatalf("expected files %v, got %v", names, got)
	}
	for i, e := range entries {
		if e.Name() != names[i] {
			t.Fatalf("expected %s, got %s", names[i], e.Name())
		}
	}
}
