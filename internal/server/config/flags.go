package config

import (
	"flag"
	"os"
	"time"

	"github.com/reelist/reelist/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-b string   storage backend: memory, dynamo or postgres
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, days
//	-k string   OMDb API key
//	-g string   AWS region for the dynamo backend
//	-e string   DynamoDB base endpoint (for local DynamoDB)
//	-u string   DynamoDB users table name
//	-w string   DynamoDB watched-movies table name
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other packages' flags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-d", "-s", "-t", "-k", "-g", "-e", "-u", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (memory, dynamo, postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")

	tokenValidityDays := fs.Int("t", int(config.TokenValidityDuration.Hours()/24), "token validity (in days)")

	fs.StringVar(&config.OMDbAPIKey, "k", config.OMDbAPIKey, "OMDb API key")
	fs.StringVar(&config.DynamoRegion, "g", config.DynamoRegion, "AWS region")
	fs.StringVar(&config.DynamoEndpoint, "e", config.DynamoEndpoint, "DynamoDB base endpoint")
	fs.StringVar(&config.UsersTable, "u", config.UsersTable, "DynamoDB users table")
	fs.StringVar(&config.WatchedTable, "w", config.WatchedTable, "DynamoDB watched-movies table")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only apply -t when it was actually passed. Earlier overlay layers may
	// carry sub-day validities that a day-granular rewrite would truncate.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidityDays) * 24 * time.Hour
		}
	})
}
