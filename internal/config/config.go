package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres  = "postgres"
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"

	AuthFirebase = "firebase"
	AuthGoogle   = "google"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string

	HTTPAddr        string
	MetricsAddr     string // empty disables the metrics listener
	ShutdownTimeout time.Duration

	Store               string
	PostgresDSN         string
	SQLitePath          string
	GoogleCloudProject  string
	FirestoreCollection string
	MongoURI            string
	MongoDatabase       string
	MongoCollection     string

	AuthProvider   string
	GoogleClientID string
	DevHost        string

	RedisAddr    string // empty keeps live updates in-process
	RedisChannel string
	KafkaBrokers []string // empty disables the kafka sink
	KafkaTopic   string

	CORSAllowedOrigins []string
}

// Load reads a .env file when present and falls back to defaults for anything
// unset.
func Load() (Config, error) {
	_ = godotenv.Load()

	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "tabsvspaces"),

		HTTPAddr:        ":" + getEnv("PORT", "8080"),
		MetricsAddr:     getEnv("METRICS_ADDR", ":9095"),
		ShutdownTimeout: shutdown,

		Store:               getEnv("STORE", StorePostgres),
		PostgresDSN:         getEnv("POSTGRES_DSN", postgresDSNFromParts()),
		SQLitePath:          getEnv("SQLITE_PATH", "votes.db"),
		GoogleCloudProject:  getEnv("GOOGLE_CLOUD_PROJECT", ""),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "votes"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGO_DATABASE", "tabsvspaces"),
		MongoCollection:     getEnv("MONGO_COLLECTION", "votes"),

		AuthProvider:   getEnv("AUTH_PROVIDER", AuthFirebase),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		DevHost:        getEnv("DEV_HOST", "localhost"),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisChannel: getEnv("REDIS_CHANNEL", "votes_broadcast"),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "votes.cast"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if err := cfg.ValidateStore(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks everything the server needs. Load checks only the store.
func (c Config) Validate() error {
	if err := c.ValidateStore(); err != nil {
		return err
	}
	return c.ValidateAuth()
}

func (c Config) ValidateStore() error {
	switch c.Store {
	case StorePostgres, StoreSQLite, StoreFirestore, StoreMongo:
		return nil
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
}

func (c Config) ValidateAuth() error {
	switch c.AuthProvider {
	case AuthFirebase:
	case AuthGoogle:
		if c.GoogleClientID == "" {
			return fmt.Errorf("GOOGLE_CLIENT_ID is required when AUTH_PROVIDER=%s", AuthGoogle)
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	return nil
}

func postgresDSNFromParts() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "postgres"),
		getEnv("POSTGRES_PASSWORD", "postgres"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "tabsvspaces"),
	)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
