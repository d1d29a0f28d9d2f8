// Package testutil provides shared test helpers for setting up log files.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteADIF writes content to a temporary .adi file that is automatically
// cleaned up, and returns its path.
func WriteADIF(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.adi")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
