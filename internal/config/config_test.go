package config

import (
	"testing"
	"time"
)

func TestLoadRequiresWorkbookLocation(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"WORKBOOK_PATH": "",
		"WORKBOOK_DIR":  "",
	})
	if err == nil {
		t.Fatal("expected error when no workbook location is configured")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"WORKBOOK_DIR": "/data/tariffs",
		"DATASET_TTL":  "",
		"PORT":         "",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatasetTTL != time.Hour {
		t.Fatalf("expected 1h default TTL, got %v", cfg.DatasetTTL)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("unexpected addr %s", cfg.HTTPAddr())
	}
	if cfg.RateLimitMax != 60 {
		t.Fatalf("unexpected rate limit %d", cfg.RateLimitMax)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"WORKBOOK_PATH":        "/data/tarifa.xlsx",
		"DATASET_TTL":          "30m",
		"RATE_LIMIT_MAX":       "5",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatasetTTL != 30*time.Minute {
		t.Fatalf("unexpected TTL %v", cfg.DatasetTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}
