// Package atomicfile replaces files so readers see either the old or the new
// content, never a partial write.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirPerm is used for parent directories created by WriteFile.
const DirPerm = 0o755

// WriteFile writes data to path through a sibling temp file that is synced
// and renamed into place. Missing parent directories are created.
//
// If perm is 0 the existing file's mode is kept, falling back to 0644.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	if perm == 0 {
		perm = existingMode(path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// chmod is unsupported on some filesystems.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := replace(tmpPath, path); err != nil {
		return err
	}

	committed = true
	return nil
}

// WriteString is WriteFile for text, keeping any existing mode.
func WriteString(path, content string) error {
	return WriteFile(path, []byte(content), 0)
}

func existingMode(path string) os.FileMode {
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return 0o644
}

// replace renames src over dst. Windows refuses to rename over an existing
// file, so the destination is removed and the rename retried.
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	_ = os.Remove(dst)
	if err2 := os.Rename(src, dst); err2 != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
