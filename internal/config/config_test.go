package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead_Defaults(t *testing.T) {
	cfg, err := Read("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 || !cfg.Server.IsDevelopment() {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Storage.Driver != StorageDynamoDB || cfg.DynamoDB.ReservationsTable != "reservas" {
		t.Fatalf("unexpected storage defaults: %+v %+v", cfg.Storage, cfg.DynamoDB)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("expected redis disabled by default")
	}
	if cfg.Phone.DefaultRegion != "AR" {
		t.Fatalf("unexpected phone region: %s", cfg.Phone.DefaultRegion)
	}
}

func TestRead_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := strings.Join([]string{
		"server:",
		"  port: 9090",
		"storage:",
		"  driver: sqlite",
		"  sqlite_path: /tmp/from-file.db",
		"phone:",
		"  default_region: uy",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Read(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("expected env to override file, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageSQLite || cfg.Storage.SQLitePath != "/tmp/from-file.db" {
		t.Fatalf("expected file values, got %+v", cfg.Storage)
	}
	if cfg.Phone.DefaultRegion != "UY" {
		t.Fatalf("expected normalized region, got %s", cfg.Phone.DefaultRegion)
	}
	if cfg.Auth.Validate() != nil || !cfg.Redis.Enabled() {
		t.Fatalf("expected auth and redis configured: %+v %+v", cfg.Auth, cfg.Redis)
	}
}

func TestRead_MissingFileIsOptional(t *testing.T) {
	if _, err := Read(t.TempDir()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Storage:  StorageConfig{Driver: StorageDynamoDB},
			DynamoDB: DynamoDBConfig{Region: "us-east-1"},
			Phone:    PhoneConfig{DefaultRegion: "AR"},
		}
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Storage = StorageConfig{Driver: StorageSQLite} }},
		{"negative ttl", func(c *Config) { c.Redis.UserCacheTTLSeconds = -1 }},
		{"unknown region", func(c *Config) { c.Phone.DefaultRegion = "XX" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		c := valid()
		if err := c.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("auth requires secret", func(t *testing.T) {
		if err := (AuthConfig{}).Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})
}
