package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	StoreBackend string // memory|redis|mysql
	CatalogFile  string
	MediaBase    string
	MediaKey     string
	Workers      int
	CacheTTL     time.Duration
	KafkaBrokers string
	KafkaTopic   string
	PayRate      int
}

// Load reads the environment, after merging an optional .env file (real env wins).
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric env value")
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		MySQLDSN:     env("MYSQL_DSN", ""),
		RedisAddr:    env("REDIS_ADDR", ""),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		StoreBackend: env("STORE_BACKEND", "memory"),
		CatalogFile:  env("CATALOG_FILE", ""),
		MediaBase:    env("MEDIA_BASE_URL", ""),
		MediaKey:     env("MEDIA_API_KEY", ""),
		Workers:      atoi("SEED_WORKERS", 4),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		KafkaBrokers: env("KAFKA_BROKERS", ""),
		KafkaTopic:   env("KAFKA_TOPIC_ASSETS", "asset_recorded"),
		PayRate:      atoi("PAY_RATE_PER_SEC", 5),
	}
	switch c.StoreBackend {
	case "memory", "redis", "mysql":
	default:
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, using memory")
		c.StoreBackend = "memory"
	}
	if c.StoreBackend == "redis" && c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
