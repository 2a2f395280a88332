package utils

import (
	"path/filepath"
	"strings"
)

// OutputPaths names the files one build writes.
type OutputPaths struct {
	Asm        string
	Object     string
	Executable string
}

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// DefaultExecutablePath places the executable in dir, named after the
// source without its extension: prog.exit -> dir/prog. A source with no
// extension gets ".out" so it is never overwritten.
func DefaultExecutablePath(dir, srcPath string) string {
	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	if ext == "" {
		return filepath.Join(dir, base+".out")
	}
	return filepath.Join(dir, strings.TrimSuffix(base, ext))
}

// DeriveOutputPaths places the assembly and object files next to the
// executable, sharing its base name.
func DeriveOutputPaths(executable, asmExt string) OutputPaths {
	return OutputPaths{
		Asm:        executable + asmExt,
		Object:     executable + ".o",
		Executable: executable,
	}
}

// Overwrites reports whether any output path names the file at src.
func (p OutputPaths) Overwrites(src string) bool {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return false
	}
	for _, out := range []string{p.Asm, p.Object, p.Executable} {
		if abs, err := filepath.Abs(out); err == nil && abs == srcAbs {
			return true
		}
	}
	return false
}
