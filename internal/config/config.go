package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	HTTPAddr      string
	NATSURL       string
	RedisAddress  string
	OTLPEndpoint  string
}

// Load reads configuration from the environment, with .env as a convenience
// for local development. NATSURL, RedisAddress, and OTLPEndpoint may be left
// empty to run without a broker, geocode cache, or tracing backend.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on environment variables")
	}

	cfg := &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "staysocial"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		NATSURL:       getEnv("NATS_URL", ""),
		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
