//go:build !windows

package index

import (
	"errors"
	"os"
)

// removeBackup removes backupPath if possible.
func removeBackup(backupPath string) error {
	if backupPath == "" {
		return nil
	}
	err := os.Remove(backupPath)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
