package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS = "0.0.0.0:8080"
	MYSQL_DSN    = "" // MySQL will be used if this is set
	SQLITE_FILE  = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	DEBUG_MODE   = true

	// Initial storage bucket. One of the two must be set on first run so
	// photo uploads have somewhere to land.
	DEFAULT_BUCKET_DIR = ""          // Local directory for a disk bucket
	S3_BUCKET_NAME     = ""          // S3 bucket to create the initial bucket from
	S3_REGION          = "us-east-1"
	S3_AUTH            = "" // "key:secret", empty means the SDK default credential chain
	CDN_URL            = "" // Public host serving bucket contents, e.g. "https://cdn.example.com"
	CDN_PREFIX         = "" // Optional path prefix under CDN_URL

	// Salt for the reversible id codec used in published album URLs
	ID_SALT = "temporary salt, change me"

	// Mailgun is used when both are set; otherwise emails are logged only
	MAILGUN_KEY    = ""
	MAILGUN_DOMAIN = ""
	APP_URL        = "http://localhost:8080" // Used in password reset emails

	SESSION_KEY       = "this is a long key" // TODO: refuse to start in production with the default
	ALLOWED_ORIGINS   = "*"
	SUBSCRIPTION_FREE = true // When true, photo upload doesn't require an active subscription
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("S3_BUCKET_NAME", &S3_BUCKET_NAME)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_AUTH", &S3_AUTH)
	readEnvString("CDN_URL", &CDN_URL)
	readEnvString("CDN_PREFIX", &CDN_PREFIX)
	readEnvString("ID_SALT", &ID_SALT)
	readEnvString("MAILGUN_KEY", &MAILGUN_KEY)
	readEnvString("MAILGUN_DOMAIN", &MAILGUN_DOMAIN)
	readEnvString("APP_URL", &APP_URL)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("ALLOWED_ORIGINS", &ALLOWED_ORIGINS)
	readEnvBool("SUBSCRIPTION_FREE", &SUBSCRIPTION_FREE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
