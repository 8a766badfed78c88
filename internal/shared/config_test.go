package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"das_notify/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "DAS_BASE_URL", "DAS_TIMEOUT_SECONDS", "MAX_INFLIGHT", "DATA_DIR"} {
		t.Setenv(k, "")
	}
	c := shared.LoadFiles()
	if c.AppEnv != "prod" || c.DataDir != "." || c.MaxInflight != 8 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.DASTimeout != 20*time.Second {
		t.Fatalf("timeout: %s", c.DASTimeout)
	}
}

func TestLoadFiles_DotEnvFillsUnset(t *testing.T) {
	t.Setenv("DAS_BASE_URL", "")
	t.Setenv("DAS_RPS", "3")
	// t.Setenv restores these; godotenv sets them via os.Setenv
	t.Setenv("DAS_TIMEOUT_SECONDS", "")

	f := filepath.Join(t.TempDir(), "test.env")
	body := "DAS_BASE_URL=https://das.example.com\nDAS_RPS=50\nDAS_TIMEOUT_SECONDS=7\n"
	if err := os.WriteFile(f, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	os.Unsetenv("DAS_BASE_URL")
	os.Unsetenv("DAS_TIMEOUT_SECONDS")

	c := shared.LoadFiles(f)
	if c.DASBaseURL != "https://das.example.com" {
		t.Fatalf("base: %q", c.DASBaseURL)
	}
	if c.DASTimeout != 7*time.Second {
		t.Fatalf("timeout: %s", c.DASTimeout)
	}
	// existing env wins over the file
	if c.DASRPS != 3 {
		t.Fatalf("rps: %d", c.DASRPS)
	}
}
