package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/portfolio/internal/timex"
)

// dotenvFiles are loaded, when present, before the environment is read.
// Variables already set in the process environment are never overridden.
var dotenvFiles = []string{".env"}

// parseEnv overlays config with environment variables. Names follow the
// deployment's existing .env files (PORT, JWT_SECRET, EMAIL_USER, ...).
func parseEnv(config *Config) error {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		config.HTTPAddr = ":" + port
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	envString(&config.Environment, "NODE_ENV")
	envString(&config.Environment, "APP_ENV")
	envString(&config.HTTPAddr, "HTTP_ADDR")
	envString(&config.GRPCHealthAddr, "GRPC_HEALTH_ADDR")
	envString(&config.LogLevel, "LOG_LEVEL")
	envString(&config.DatabaseDSN, "DATABASE_URL")
	envString(&config.SecretKey, "JWT_SECRET")
	collect(envDuration(&config.TokenTTL, "JWT_EXPIRES_IN"))
	collect(envDuration(&config.OTPTTL, "OTP_TTL"))
	collect(envDuration(&config.OTPRetention, "OTP_RETENTION"))
	collect(envInt(&config.BcryptCost, "BCRYPT_COST"))
	envString(&config.SMTPHost, "SMTP_HOST")
	collect(envInt(&config.SMTPPort, "SMTP_PORT"))
	envString(&config.SMTPUser, "EMAIL_USER")
	envString(&config.SMTPPassword, "EMAIL_PASS")
	envString(&config.MailFrom, "EMAIL_FROM")
	envString(&config.AdminEmail, "ADMIN_EMAIL")
	collect(envDuration(&config.MailTimeout, "MAIL_TIMEOUT"))
	envString(&config.S3AccessKey, "S3_ACCESS_KEY")
	envString(&config.S3SecretKey, "S3_SECRET_KEY")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_ENDPOINT")
	collect(envDuration(&config.PresignTTL, "PRESIGN_TTL"))
	collect(envInt64(&config.MaxUploadSize, "MAX_FILE_SIZE"))
	envString(&config.RedisAddr, "REDIS_ADDR")
	collect(envDuration(&config.RateLimitPeriod, "RATE_LIMIT_PERIOD"))
	collect(envInt64(&config.AuthRateLimit, "AUTH_RATE_LIMIT"))
	collect(envInt64(&config.ContactRateLimit, "CONTACT_RATE_LIMIT"))
	collect(envDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT"))

	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok && v != "" {
		config.CORSOrigins = splitList(v)
	}

	return errors.Join(errs...)
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, name string) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	d, err := timex.Parse(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

func envInt(dst *int, name string) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func envInt64(dst *int64, name string) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
