package utils

import (
	"path/filepath"
	"testing"
)

func TestGetPathInfoResolvesAbsolute(t *testing.T) {
	full, dir, err := GetPathInfo("prog.as")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(full) {
		t.Errorf("full path %q is not absolute", full)
	}
	if dir != filepath.Dir(full) {
		t.Errorf("dir = %q, want %q", dir, filepath.Dir(full))
	}
}
