package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ReplaceExt swaps the extension of path for ext (".bin", ".lst").
// A path without extension gets ext appended.
func ReplaceExt(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" {
		return path + ext
	}
	return strings.TrimSuffix(path, old) + ext
}

// OutputPath places the file named by ReplaceExt(inPath, ext) into dir, or
// next to inPath when dir is empty.
func OutputPath(inPath, dir, ext string) string {
	out := ReplaceExt(inPath, ext)
	if dir == "" {
		return out
	}
	return filepath.Join(dir, filepath.Base(out))
}

// WriteFile writes data with the permissions used for every build artefact.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
