package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeTitleStripsPaddingAndControlBytes(t *testing.T) {
	raw := append([]byte("TETRIS"), make([]byte, 10)...)
	if got, want := sanitizeTitle(raw), "TETRIS"; got != want {
		t.Fatalf("sanitizeTitle = %q, want %q", got, want)
	}
}

func TestLoadBootImageRejectsWrongLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.bin")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := loadBootImage(path); err == nil {
		t.Fatalf("expected an error for a boot ROM that isn't exactly 256 bytes")
	}
}

func TestLoadBootImageEmptyPathIsNotAnError(t *testing.T) {
	boot, err := loadBootImage("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if boot != nil {
		t.Fatalf("expected a nil boot image for an empty path, got %d bytes", len(boot))
	}
}

func TestLoadCartridgeImageRejectsMissingFile(t *testing.T) {
	_, _, err := loadCartridgeImage(filepath.Join(t.TempDir(), "missing.gb"))
	if err == nil {
		t.Fatalf("expected an error for a nonexistent cartridge path")
	}
}

func TestLoadCartridgeImageRejectsShortImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.gb")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := loadCartridgeImage(path); err == nil {
		t.Fatalf("expected an error for an image shorter than two ROM banks")
	}
}
