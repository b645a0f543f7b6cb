package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server configuration values.
type Config struct {
	HostIP             string // Host IP for the server
	RESTPort           int    // Port for the REST API
	GinMode            string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret          string // Secret key for JWT signing
	JWTIssuer          string // Issuer claim for JWTs
	RedisAddr          string // Redis address for run snapshots, empty keeps them in memory
	RedisPassword      string // Redis password
	RedisDB            int    // Redis database number
	SnapshotTTLSeconds int    // Lifetime of an idle run snapshot
	MongoURI           string // MongoDB URI for finished runs, empty disables the history
	DBName             string // Name of the database
}

// Load reads the configuration from the environment. A .env file in the working directory is
// loaded first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:             getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:           getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:            getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		JWTIssuer:          getEnvWithDefault("JWT_ISSUER", "vinom-explorer"),
		RedisAddr:          getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:      getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsIntWithDefault("REDIS_DB", 0),
		SnapshotTTLSeconds: getEnvAsIntWithDefault("SNAPSHOT_TTL_SECONDS", 3600),
		MongoURI:           getEnvWithDefault("MONGO_URI", ""),
		DBName:             getEnvWithDefault("DB_NAME", "vinom_explorer"),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to defaultValue
// when unset. A value that is not an integer is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
