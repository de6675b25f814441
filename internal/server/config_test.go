package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/mortgage-qualify/pkg/constants"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default %q", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Errorf("BodySizeBytes = %d, expected default %d", cfg.BodySizeBytes(), constants.DefaultMaxBodySizeBytes)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default", cfg.Address)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	content := `
address: ":9090"
maxBodySize: "1M"
redisAddress: "localhost:6379"
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("Address = %q, expected :9090", cfg.Address)
	}
	if cfg.BodySizeBytes() != 1024*1024 {
		t.Errorf("BodySizeBytes = %d, expected 1M", cfg.BodySizeBytes())
	}
	if cfg.RedisAddress != "localhost:6379" {
		t.Errorf("RedisAddress = %q, expected localhost:6379", cfg.RedisAddress)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", cfg.Logging.Level)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(": not yaml"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"256", 256, false},
		{"256K", 256 * 1024, false},
		{"256KB", 256 * 1024, false},
		{"10M", 10 * 1024 * 1024, false},
		{"1G", 1024 * 1024 * 1024, false},
		{"  2M  ", 2 * 1024 * 1024, false},
		{"", constants.DefaultMaxBodySizeBytes, false},
		{"junk", 0, true},
		{"M", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSize(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSetBodySizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.SetBodySizeBytes(4096)
	if cfg.BodySizeBytes() != 4096 {
		t.Errorf("BodySizeBytes = %d, expected 4096", cfg.BodySizeBytes())
	}

	// Non-positive overrides are ignored.
	cfg.SetBodySizeBytes(0)
	if cfg.BodySizeBytes() != 4096 {
		t.Errorf("BodySizeBytes = %d, expected unchanged 4096", cfg.BodySizeBytes())
	}
}
