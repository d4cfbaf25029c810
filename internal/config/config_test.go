package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: fec-2018
input:
  path: /data/itcont.txt
output:
  zip_path: /out/zip.txt
  date_path: /out/date.txt
database:
  enabled: true
  reports:
    host: localhost
    port: 5433
    name: donors
    user: testuser
    password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "fec-2018" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "fec-2018")
	}
	if cfg.Input.Path != "/data/itcont.txt" {
		t.Errorf("Input.Path = %q, want %q", cfg.Input.Path, "/data/itcont.txt")
	}
	if cfg.Output.ZipPath != "/out/zip.txt" {
		t.Errorf("Output.ZipPath = %q, want %q", cfg.Output.ZipPath, "/out/zip.txt")
	}
	if !cfg.Database.Enabled {
		t.Error("Database.Enabled = false, want true")
	}
	if cfg.Database.Reports.Port != 5433 {
		t.Errorf("Database.Reports.Port = %d, want 5433", cfg.Database.Reports.Port)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
database:
  reports:
    host: localhost
    name: donors
    user: testuser
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Reports.Password != "secret123" {
		t.Errorf("Database.Reports.Password = %q, want %q", cfg.Database.Reports.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "instance:\n  id: test\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Input.Path != DefaultInputPath {
		t.Errorf("Input.Path = %q, want default %q", cfg.Input.Path, DefaultInputPath)
	}
	if cfg.Input.MinFields != DefaultMinFields {
		t.Errorf("Input.MinFields = %d, want default %d", cfg.Input.MinFields, DefaultMinFields)
	}
	if cfg.Validation.MaxYear != DefaultMaxYear {
		t.Errorf("Validation.MaxYear = %d, want default %d", cfg.Validation.MaxYear, DefaultMaxYear)
	}
	if cfg.Validation.MaxAmount != DefaultMaxAmount {
		t.Errorf("Validation.MaxAmount = %d, want default %d", cfg.Validation.MaxAmount, DefaultMaxAmount)
	}
	if cfg.Batch.Rounding != RoundingHalfEven {
		t.Errorf("Batch.Rounding = %q, want default %q", cfg.Batch.Rounding, RoundingHalfEven)
	}
	if cfg.Database.Reports.Port != DefaultDBPort {
		t.Errorf("Database.Reports.Port = %d, want default %d", cfg.Database.Reports.Port, DefaultDBPort)
	}
	if cfg.Server.FeedPath != DefaultFeedPath {
		t.Errorf("Server.FeedPath = %q, want default %q", cfg.Server.FeedPath, DefaultFeedPath)
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := LoadAndValidate("")
		if err != nil {
			t.Fatalf("LoadAndValidate(\"\") error = %v", err)
		}
		if cfg.Output.DatePath != DefaultDatePath {
			t.Errorf("Output.DatePath = %q, want %q", cfg.Output.DatePath, DefaultDatePath)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil || !strings.Contains(err.Error(), "read config file") {
			t.Errorf("LoadAndValidate() error = %v, want read config file error", err)
		}
	})

	t.Run("invalid rounding", func(t *testing.T) {
		path := writeTempFile(t, "batch:\n  rounding: bankers\n")
		_, err := LoadAndValidate(path)
		if err == nil || !strings.Contains(err.Error(), "batch.rounding") {
			t.Errorf("LoadAndValidate() error = %v, want batch.rounding error", err)
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeTempFile(t, "input: [unterminated\n")
		_, err := LoadAndValidate(path)
		if err == nil || !strings.Contains(err.Error(), "parse config yaml") {
			t.Errorf("LoadAndValidate() error = %v, want parse error", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "missing instance id",
			mutate:  func(c *Config) { c.Instance.ID = "" },
			wantErr: "instance.id is required",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: `log.level must be one of debug, info, warn, error, got "trace"`,
		},
		{
			name:    "too few fields",
			mutate:  func(c *Config) { c.Input.MinFields = 10 },
			wantErr: "input.min_fields must be >= 21, got 10",
		},
		{
			name:    "one field short of a full record",
			mutate:  func(c *Config) { c.Input.MinFields = 20 },
			wantErr: "input.min_fields must be >= 21, got 20",
		},
		{
			name:    "extra fields required",
			mutate:  func(c *Config) { c.Input.MinFields = 22 },
			wantErr: "",
		},
		{
			name:    "negative max amount",
			mutate:  func(c *Config) { c.Validation.MaxAmount = -1 },
			wantErr: "validation.max_amount must be between 1 and 4294967296, got -1",
		},
		{
			name:    "max amount above tracker limit",
			mutate:  func(c *Config) { c.Validation.MaxAmount = 1 << 33 },
			wantErr: "validation.max_amount must be between 1 and 4294967296, got 8589934592",
		},
		{
			name:    "max amount at tracker limit",
			mutate:  func(c *Config) { c.Validation.MaxAmount = 1 << 32 },
			wantErr: "",
		},
		{
			name:    "inverted year window",
			mutate:  func(c *Config) { c.Validation.MinYear = 2020 },
			wantErr: "validation.min_year (2020) must be below max_year (2018)",
		},
		{
			name:    "database enabled without host",
			mutate:  func(c *Config) { c.Database.Enabled = true },
			wantErr: "database.reports.host is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.Reports = DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 5, MinConns: 10}
			},
			wantErr: "database.reports.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name: "database disabled skips db checks",
			mutate: func(c *Config) {
				c.Database.Reports = DBConfig{}
			},
			wantErr: "",
		},
		{
			name: "server port out of range",
			mutate: func(c *Config) {
				c.Server.Enabled = true
				c.Server.Port = 70000
			},
			wantErr: "server.port must be between 1 and 65535, got 70000",
		},
		{
			name: "server paths collide",
			mutate: func(c *Config) {
				c.Server.Enabled = true
				c.Server.FeedPath = "/metrics"
			},
			wantErr: `server.metrics_path and server.feed_path must differ, both are "/metrics"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadAndValidate_SampleConfig(t *testing.T) {
	cfg, err := LoadAndValidate(filepath.Join("..", "..", "configs", "donors.yaml"))
	if err != nil {
		t.Fatalf("LoadAndValidate(sample) error = %v", err)
	}
	def := Default()
	if cfg.Input != def.Input || cfg.Output != def.Output || cfg.Validation != def.Validation ||
		cfg.Batch != def.Batch || cfg.Pipeline != def.Pipeline || cfg.Server != def.Server {
		t.Errorf("sample config = %+v, want defaults %+v", *cfg, *def)
	}
	if cfg.Database.Enabled {
		t.Error("sample config enables the database")
	}
}
