package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const verboseFlagFile = "debug_logging"

// settingsFile persists the verbose toggle as a tiny file in the state dir
// so the choice survives restarts.
type settingsFile struct {
	mu   sync.Mutex
	path string
}

func newSettingsFile(dir string) *settingsFile {
	return &settingsFile{path: filepath.Join(dir, verboseFlagFile)}
}

func (s *settingsFile) verboseEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "true"
}

func (s *settingsFile) setVerbose(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !enabled {
		_ = os.Remove(s.path) //nolint:errcheck // absent file already means off
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o700) //nolint:errcheck
	_ = os.WriteFile(s.path, []byte("true\n"), 0o600)
}
