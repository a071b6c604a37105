package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays configuration from environment variables. The names
// follow the original deployment's .env file, so an existing environment
// keeps working unchanged.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.Address = v
	}
	if v, ok := os.LookupEnv("STORAGE_BACKEND"); ok {
		config.StorageBackend = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("OMDB_API_KEY"); ok {
		config.OMDbAPIKey = v
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.CORSOrigins = origins
	}
	if v, ok := os.LookupEnv("AWS_REGION"); ok {
		config.DynamoRegion = v
	}
	if v, ok := os.LookupEnv("DYNAMO_ENDPOINT"); ok {
		config.DynamoEndpoint = v
	}
	if v, ok := os.LookupEnv("DYNAMO_ACCESS_KEY"); ok {
		config.DynamoAccessKey = v
	}
	if v, ok := os.LookupEnv("DYNAMO_SECRET_KEY"); ok {
		config.DynamoSecretKey = v
	}
	if v, ok := os.LookupEnv("USERS_TABLE"); ok {
		config.UsersTable = v
	}
	if v, ok := os.LookupEnv("WATCHED_TABLE"); ok {
		config.WatchedTable = v
	}
}
