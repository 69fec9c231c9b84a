package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithRequiredEnvVars(t *testing.T) {
	os.Setenv("DB_PASSWORD", "test-password")
	defer os.Unsetenv("DB_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DB.Password != "test-password" {
		t.Errorf("DB.Password = %v, want %v", cfg.DB.Password, "test-password")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Setenv("DB_PASSWORD", "test-pass")
	defer os.Unsetenv("DB_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %v, want %v", cfg.Server.Port, 3000)
	}
	if cfg.Server.ClaimsHeader != "X-Identity-Claims" {
		t.Errorf("Server.ClaimsHeader = %v, want %v", cfg.Server.ClaimsHeader, "X-Identity-Claims")
	}
	if cfg.DB.Host != "localhost" {
		t.Errorf("DB.Host = %v, want %v", cfg.DB.Host, "localhost")
	}
	if cfg.DB.Port != 5432 {
		t.Errorf("DB.Port = %v, want %v", cfg.DB.Port, 5432)
	}
	if cfg.DB.Database != "video_share" {
		t.Errorf("DB.Database = %v, want %v", cfg.DB.Database, "video_share")
	}
	if cfg.Storage.Bucket != "video-share-uploads" {
		t.Errorf("Storage.Bucket = %v, want %v", cfg.Storage.Bucket, "video-share-uploads")
	}
	if cfg.Grant.TTL != time.Hour {
		t.Errorf("Grant.TTL = %v, want %v", cfg.Grant.TTL, time.Hour)
	}
	if cfg.Queue.UploadedQueue != "video_uploaded_queue" {
		t.Errorf("Queue.UploadedQueue = %v, want %v", cfg.Queue.UploadedQueue, "video_uploaded_queue")
	}
	if cfg.Reaper.MaxPendingAge != 24*time.Hour {
		t.Errorf("Reaper.MaxPendingAge = %v, want %v", cfg.Reaper.MaxPendingAge, 24*time.Hour)
	}
}

func TestLoad_MissingRequiredVar(t *testing.T) {
	os.Unsetenv("DB_PASSWORD")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for missing DB_PASSWORD")
	}
}

func TestDSN(t *testing.T) {
	cfg := DBConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "svc",
		Password: "secret",
		Database: "videos",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=svc password=secret dbname=videos sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:  ServerConfig{Port: 3000},
		DB:      DBConfig{Password: "x"},
		Storage: StorageConfig{Bucket: "b"},
		Grant:   GrantConfig{TTL: time.Hour},
		Reaper:  ReaperConfig{MaxPendingAge: time.Hour},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid config = %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"missing password", func(c *Config) { c.DB.Password = "" }},
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }},
		{"zero ttl", func(c *Config) { c.Grant.TTL = 0 }},
		{"zero pending age", func(c *Config) { c.Reaper.MaxPendingAge = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() expected error")
			}
		})
	}
}
