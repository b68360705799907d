package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/flagx"
	"github.com/dmitrijs2005/portfolio/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations go through timex.Duration
// so both "10m"/"7d" strings and integer nanoseconds are accepted. Fields left
// out of the file keep their current value.
type JsonConfig struct {
	Environment    string `json:"environment"`
	HTTPAddr       string `json:"http_addr"`
	GRPCHealthAddr string `json:"grpc_health_addr"`
	LogLevel       string `json:"log_level"`

	DatabaseDSN string `json:"database_dsn"`

	SecretKey    string         `json:"secret_key"`
	TokenTTL     timex.Duration `json:"token_ttl"`
	OTPTTL       timex.Duration `json:"otp_ttl"`
	OTPRetention timex.Duration `json:"otp_retention"`
	BcryptCost   int            `json:"bcrypt_cost"`

	SMTPHost     string         `json:"smtp_host"`
	SMTPPort     int            `json:"smtp_port"`
	SMTPUser     string         `json:"smtp_user"`
	SMTPPassword string         `json:"smtp_password"`
	MailFrom     string         `json:"mail_from"`
	AdminEmail   string         `json:"admin_email"`
	MailTimeout  timex.Duration `json:"mail_timeout"`

	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	PresignTTL     timex.Duration `json:"presign_ttl"`
	MaxUploadSize  int64          `json:"max_upload_size"`

	RedisAddr        string         `json:"redis_addr"`
	RateLimitPeriod  timex.Duration `json:"rate_limit_period"`
	AuthRateLimit    int64          `json:"auth_rate_limit"`
	ContactRateLimit int64          `json:"contact_rate_limit"`
	CORSOrigins      []string       `json:"cors_origins"`

	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c / -config, if any, into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.Environment, c.Environment)
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.TokenTTL, c.TokenTTL)
	setDuration(&config.OTPTTL, c.OTPTTL)
	setDuration(&config.OTPRetention, c.OTPRetention)
	setNumber(&config.BcryptCost, c.BcryptCost)
	setString(&config.SMTPHost, c.SMTPHost)
	setNumber(&config.SMTPPort, c.SMTPPort)
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.AdminEmail, c.AdminEmail)
	setDuration(&config.MailTimeout, c.MailTimeout)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setDuration(&config.PresignTTL, c.PresignTTL)
	setNumber(&config.MaxUploadSize, c.MaxUploadSize)
	setString(&config.RedisAddr, c.RedisAddr)
	setDuration(&config.RateLimitPeriod, c.RateLimitPeriod)
	setNumber(&config.AuthRateLimit, c.AuthRateLimit)
	setNumber(&config.ContactRateLimit, c.ContactRateLimit)
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setNumber[T int | int64](dst *T, v T) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
