// Package testutil holds fixtures shared by the command tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/cutter/internal/logger"
)

// WriteTree creates files (relative path -> content) below root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
}

// SetupTestConfig writes a configuration file holding settings (YAML lines
// below the settings key) to a temporary directory and returns its path.
func SetupTestConfig(t *testing.T, settings string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configData := "settings:\n" + settings
	if err := os.WriteFile(configPath, []byte(configData), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	return configPath
}

// CaptureLogs routes the process logger into a buffer at debug level for the
// rest of the test.
func CaptureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	logger.SetTestOutput(buf)
	logger.InitLogger("debug", logger.FormatText)
	t.Cleanup(func() {
		logger.UnsetTestOutput()
		logger.InitLogger("info", logger.FormatText)
	})

	return buf
}
