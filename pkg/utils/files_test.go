package utils

import (
	"path/filepath"
	"testing"
)

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo(filepath.Join("examples", "..", "prog.exit"))
	if err != nil {
		t.Fatalf("GetPathInfo failed: %v", err)
	}
	if !filepath.IsAbs(full) {
		t.Errorf("fullPath %q is not absolute", full)
	}
	if filepath.Base(full) != "prog.exit" {
		t.Errorf("fullPath %q was not cleaned", full)
	}
	if filepath.Dir(full) != dir {
		t.Errorf("parentDir = %q; want %q", dir, filepath.Dir(full))
	}
}

func TestDefaultExecutablePath(t *testing.T) {
	dir := filepath.Join("build", "out")
	tests := []struct {
		in, want string
	}{
		{"prog.exit", filepath.Join(dir, "prog")},
		{filepath.Join("src", "main.ex"), filepath.Join(dir, "main")},
		{"noext", filepath.Join(dir, "noext.out")},
		{"archive.tar.gz", filepath.Join(dir, "archive.tar")},
	}
	for _, tc := range tests {
		if got := DefaultExecutablePath(dir, tc.in); got != tc.want {
			t.Errorf("DefaultExecutablePath(%q, %q) = %q; want %q", dir, tc.in, got, tc.want)
		}
	}
}

func TestOverwrites(t *testing.T) {
	dir := t.TempDir()
	paths := DeriveOutputPaths(filepath.Join(dir, "prog"), ".asm")

	tests := []struct {
		src  string
		want bool
	}{
		{filepath.Join(dir, "prog.asm"), true},
		{filepath.Join(dir, "prog.o"), true},
		{filepath.Join(dir, "prog"), true},
		{filepath.Join(dir, "sub", "..", "prog.asm"), true},
		{filepath.Join(dir, "prog.exit"), false},
		{filepath.Join(dir, "prog.s"), false},
	}
	for _, tc := range tests {
		if got := paths.Overwrites(tc.src); got != tc.want {
			t.Errorf("Overwrites(%q) = %v; want %v", tc.src, got, tc.want)
		}
	}
}

func TestDeriveOutputPaths(t *testing.T) {
	got := DeriveOutputPaths("out", ".asm")
	want := OutputPaths{Asm: "out.asm", Object: "out.o", Executable: "out"}
	if got != want {
		t.Errorf("DeriveOutputPaths = %+v; want %+v", got, want)
	}
}
