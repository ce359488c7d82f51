package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gala/internal/domain"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Log        LogConfig
	Sections   SectionsConfig
	Upload     UploadConfig
	Cloudinary CloudinaryConfig
	Mail       MailConfig
	Admin      AdminSeedConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Comma-separated list of allowed origins, or "*".
	CORSOrigins      []string
	CORSCredentials  bool
	ContactRateLimit int
}

type DatabaseConfig struct {
	Driver          string // mysql | sqlite
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
	// Cookies are marked Secure outside development.
	SecureCookies bool
}

type LogConfig struct {
	Level      string
	Format     string // json | console
	Output     string // stdout | file | both
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

type SectionsConfig struct {
	SchemaFile     string
	RequireVersion bool
	DefaultLocale  string
}

type UploadConfig struct {
	Driver      string // local | cloudinary
	Root        string
	PublicPath  string
	MaxImageMB  int
	MaxResumeMB int
	// MaxPixels caps width*height of an image before it is decoded.
	MaxPixels int64
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type MailConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	From           string
	RecipientEmail string
	SiteName       string
}

// AdminSeedConfig describes the bootstrap admin created on start-up when the admins table is empty.
type AdminSeedConfig struct {
	Email    string
	Password string
	Name     string
}

func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	env := getenv("APP_ENV", "development")
	return &Config{
		Server: ServerConfig{
			Port:             getenv("PORT", "5000"),
			Env:              env,
			ReadTimeout:      getenvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:     getenvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			CORSOrigins:      splitList(getenv("ORIGIN", "*")),
			CORSCredentials:  getenvBool("CREDENTIALS", true),
			ContactRateLimit: getenvInt("CONTACT_RATE_LIMIT", 5),
		},
		Database: DatabaseConfig{
			Driver:          getenv("DB_DRIVER", "mysql"),
			DSN:             getenv("DATABASE_URL", "gala:gala@tcp(localhost:3306)/gala?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			Secret:        getenv("SECRET_KEY", "change-me-in-production"),
			Expiry:        getenvDuration("TOKEN_EXPIRY", 24*time.Hour),
			Issuer:        getenv("TOKEN_ISSUER", "gala"),
			SecureCookies: env == "production",
		},
		Log: LogConfig{
			Level:      getenv("LOG_LEVEL", "info"),
			Format:     getenv("LOG_FORMAT", "json"),
			Output:     getenv("LOG_OUTPUT", "stdout"),
			FilePath:   getenv("LOG_FILE_PATH", "logs/gala.log"),
			MaxSize:    getenvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getenvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getenvInt("LOG_MAX_AGE", 28),
		},
		Sections: SectionsConfig{
			SchemaFile:     getenv("SECTION_SCHEMA_FILE", ""),
			RequireVersion: getenvBool("SECTIONS_REQUIRE_VERSION", false),
			DefaultLocale:  getenv("DEFAULT_LOCALE", "en"),
		},
		Upload: UploadConfig{
			Driver:      getenv("UPLOAD_DRIVER", "local"),
			Root:        getenv("UPLOAD_ROOT", "uploads"),
			PublicPath:  getenv("UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxImageMB:  getenvInt("UPLOAD_MAX_IMAGE_MB", 10),
			MaxResumeMB: getenvInt("UPLOAD_MAX_RESUME_MB", 5),
			MaxPixels:   int64(getenvInt("UPLOAD_MAX_PIXELS", 16383*16383)),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getenv("CLOUDINARY_API_KEY", ""),
			APISecret: getenv("CLOUDINARY_API_SECRET", ""),
			Folder:    getenv("CLOUDINARY_FOLDER", "gala"),
		},
		Mail: MailConfig{
			Host:           getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:           getenvInt("SMTP_PORT", 587),
			Username:       getenv("EMAIL_USER", ""),
			Password:       getenv("EMAIL_PASSWORD", ""),
			From:           getenv("EMAIL_FROM", getenv("EMAIL_USER", "")),
			RecipientEmail: getenv("RECIPIENT_EMAIL", "info@turkmengala.com"),
			SiteName:       getenv("SITE_NAME", "Turkmen Gala"),
		},
		Admin: AdminSeedConfig{
			Email:    getenv("ADMIN_EMAIL", ""),
			Password: getenv("ADMIN_PASSWORD", ""),
			Name:     getenv("ADMIN_NAME", "Admin User"),
		},
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if c.Server.Env == "production" && c.JWT.Secret == "change-me-in-production" {
		errs = append(errs, errors.New("SECRET_KEY must be changed in production"))
	}
	if c.JWT.Expiry <= 0 {
		errs = append(errs, errors.New("TOKEN_EXPIRY must be positive"))
	}
	switch c.Upload.Driver {
	case "local":
	case "cloudinary":
		if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
			errs = append(errs, errors.New("cloudinary credentials are required when UPLOAD_DRIVER=cloudinary"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported UPLOAD_DRIVER %q", c.Upload.Driver))
	}
	if c.Upload.MaxImageMB <= 0 || c.Upload.MaxResumeMB <= 0 {
		errs = append(errs, errors.New("upload size limits must be positive"))
	}
	if c.Upload.MaxPixels <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_PIXELS must be positive"))
	}
	if !domain.IsSupportedLocale(c.Sections.DefaultLocale) {
		errs = append(errs, fmt.Errorf("unsupported DEFAULT_LOCALE %q", c.Sections.DefaultLocale))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool { return c.Server.Env == "production" }

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	switch strings.ToLower(getenv(k, "")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return fallback
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getenv(k, "")); err == nil {
		return d
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
