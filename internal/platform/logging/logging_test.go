package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"innertone/internal/platform/logging"
)

func TestNewWriterFiltersByLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logging.NewWriter(&buf, "warn")
	log.Info("hidden")
	log.Warn("chat request failed", "status", 502)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, "chat request failed") || !strings.Contains(out, "status=502") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestNewCreatesLogFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".innertone", "innertone.log")
	log, closer, err := logging.New(path, "bogus")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "started") {
		t.Fatalf("unknown level should fall back to info: %q", raw)
	}
}
