package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
)

func TestFileStorageWriteThenRead(t *testing.T) {
	fs := NewFileStorage()
	dir := filepath.Join(t.TempDir(), "sub", "dir")

	if err := fs.MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(dir, "doc.txt")
	content := "ユウナ\r\n  trailing spaces  \n"
	if err := fs.WriteText(path, content); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	got, err := fs.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != content {
		t.Errorf("ReadText() = %q, want %q", got, content)
	}
}

func TestFileStorageWriteOverwrites(t *testing.T) {
	fs := NewFileStorage()
	path := filepath.Join(t.TempDir(), "doc.txt")

	if err := fs.WriteText(path, "a much longer original body"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if err := fs.WriteText(path, "short"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	got, err := fs.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "short" {
		t.Errorf("ReadText() = %q, want %q", got, "short")
	}
}

func TestFileStorageReadRejectsInvalidUTF8(t *testing.T) {
	fs := NewFileStorage()
	path := filepath.Join(t.TempDir(), "binary.dat")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := fs.ReadText(path)
	if !errors.Is(err, encoding.ErrInvalidUTF8) {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}

func TestFileStorageReadMissing(t *testing.T) {
	fs := NewFileStorage()
	_, err := fs.ReadText(filepath.Join(t.TempDir(), "missing.md"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestFileStorageWritable(t *testing.T) {
	fs := NewFileStorage()
	dir := t.TempDir()

	if !fs.Writable(dir) {
		t.Errorf("Writable(%q) = false, want true", dir)
	}
	if fs.Writable(filepath.Join(dir, "missing")) {
		t.Error("Writable() = true for a missing directory")
	}
}
