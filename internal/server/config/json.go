package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/reelist/reelist/internal/flagx"
	"github.com/reelist/reelist/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "168h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; its set fields are copied into the runtime Config.
type JsonConfig struct {
	Address               string         `json:"address"`
	StorageBackend        string         `json:"storage_backend"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	OMDbAPIKey            string         `json:"omdb_api_key"`
	CORSOrigins           []string       `json:"cors_origins"`
	DynamoRegion          string         `json:"dynamo_region"`
	DynamoEndpoint        string         `json:"dynamo_endpoint"`
	DynamoAccessKey       string         `json:"dynamo_access_key"`
	DynamoSecretKey       string         `json:"dynamo_secret_key"`
	UsersTable            string         `json:"users_table"`
	WatchedTable          string         `json:"watched_table"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c/-config flags; when
// neither is set no JSON file is loaded. An unreadable or invalid file
// panics: a half-applied config is worse than no server.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Address != "" {
		config.Address = c.Address
	}
	if c.StorageBackend != "" {
		config.StorageBackend = c.StorageBackend
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.OMDbAPIKey != "" {
		config.OMDbAPIKey = c.OMDbAPIKey
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.DynamoRegion != "" {
		config.DynamoRegion = c.DynamoRegion
	}
	if c.DynamoEndpoint != "" {
		config.DynamoEndpoint = c.DynamoEndpoint
	}
	if c.DynamoAccessKey != "" {
		config.DynamoAccessKey = c.DynamoAccessKey
	}
	if c.DynamoSecretKey != "" {
		config.DynamoSecretKey = c.DynamoSecretKey
	}
	if c.UsersTable != "" {
		config.UsersTable = c.UsersTable
	}
	if c.WatchedTable != "" {
		config.WatchedTable = c.WatchedTable
	}
}
