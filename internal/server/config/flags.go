package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/portfolio/internal/flagx"
	"github.com/dmitrijs2005/portfolio/internal/timex"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":3001")
//	-g string     gRPC health bind address
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-t duration   token validity ("7d", "12h")
//	-o duration   OTP validity ("10m")
//	-l string     log level
//	-r string     Redis address for rate limiting
//	-b string     S3 bucket name
//	-e string     S3 base endpoint
//
// args is filtered with flagx.FilterArgs first so flags meant for other
// components (such as -c) are not rejected.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-o", "-l", "-r", "-b", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP API")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port for the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenTTL := timex.Duration{Duration: config.TokenTTL}
	otpTTL := timex.Duration{Duration: config.OTPTTL}
	fs.Var(&tokenTTL, "t", "token validity duration")
	fs.Var(&otpTTL, "o", "otp validity duration")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.TokenTTL = tokenTTL.Duration
	config.OTPTTL = otpTTL.Duration
	return nil
}
