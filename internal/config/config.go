package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Dataset      string
	DBDSN        string
	MediaDir     string
	LogFile      string
	CardSkin     string
	FetchTimeout time.Duration
	TemplatesDir string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// Load reads the environment, after an optional .env file in the working
// directory.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	timeout, err := time.ParseDuration(get("FETCH_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		log.Printf("[warn] invalid FETCH_TIMEOUT %q, using 10s", getenv("FETCH_TIMEOUT"))
		timeout = 10 * time.Second
	}

	cfg := Config{
		Port:         get("PORT", "8080"),
		Dataset:      get("DATASET", "./data/cars.json"),
		DBDSN:        get("DB_DSN", "carmarket.db"), // importer target
		MediaDir:     get("MEDIA_DIR", "./data/media"),
		LogFile:      get("LOG_FILE", ""),
		CardSkin:     get("CARD_SKIN", "row"),
		FetchTimeout: timeout,
		TemplatesDir: get("TEMPLATES_DIR", ""),

		MinioEndpoint:  get("MINIO_ENDPOINT", ""),
		MinioAccessKey: get("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: get("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    get("MINIO_USE_SSL", "") == "true",
	}
	log.Printf("[config] PORT=%s DATASET=%s MEDIA_DIR=%s LOG_FILE=%s CARD_SKIN=%s FETCH_TIMEOUT=%s",
		cfg.Port, cfg.Dataset, cfg.MediaDir, cfg.LogFile, cfg.CardSkin, cfg.FetchTimeout)
	return cfg
}
