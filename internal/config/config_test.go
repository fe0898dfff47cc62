package config

import (
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))
	if cfg.Port != "8080" || cfg.Dataset != "./data/cars.json" || cfg.CardSkin != "row" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("want 10s timeout, got %s", cfg.FetchTimeout)
	}
	if cfg.TemplatesDir != "" || cfg.MinioUseSSL {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"PORT":           "9000",
		"DATASET":        " https://cdn.example.test/cars.json ",
		"CARD_SKIN":      "grid",
		"FETCH_TIMEOUT":  "3s",
		"MINIO_USE_SSL":  "true",
		"MINIO_ENDPOINT": "minio:9000",
	}))
	if cfg.Port != "9000" || cfg.Dataset != "https://cdn.example.test/cars.json" || cfg.CardSkin != "grid" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.FetchTimeout != 3*time.Second || !cfg.MinioUseSSL || cfg.MinioEndpoint != "minio:9000" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestFromEnvBadTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s"} {
		cfg := FromEnv(envMap(map[string]string{"FETCH_TIMEOUT": v}))
		if cfg.FetchTimeout != 10*time.Second {
			t.Fatalf("%q: want fallback 10s, got %s", v, cfg.FetchTimeout)
		}
	}
}
