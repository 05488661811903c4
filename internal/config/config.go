package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string      `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer  HTTPServer  `yaml:"http_server"`
	Database    Database    `yaml:"database"`
	Auth        Auth        `yaml:"auth"`
	Attachments Attachments `yaml:"attachments"`
	Mail        Mail        `yaml:"mail"`
	Telemetry   Telemetry   `yaml:"telemetry"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:5000"`
	Timeout        time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	PublicURL      string        `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:5000"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
	StaticDir      string        `yaml:"static_dir" env:"STATIC_DIR"`
	// RateLimit is the number of public write requests accepted per client per minute.
	RateLimit int `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"30"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// friends. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers" env:"TRUST_PROXY_HEADERS" env-default:"false"`
}

type Database struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	DSN      string `yaml:"dsn" env:"DB_DSN"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"psyche_connect"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type Auth struct {
	AdminEmail        string        `yaml:"admin_email" env:"ADMIN_EMAIL" env-required:"true"`
	AdminPasswordHash string        `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
	JWTSecret         string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL          time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"2h"`
}

type Attachments struct {
	Backend string `yaml:"backend" env:"ATTACHMENTS_BACKEND" env-default:"disk"`
	Dir     string `yaml:"dir" env:"UPLOADS_DIR" env-default:"./uploads"`
	MaxSize int64  `yaml:"max_size" env:"UPLOADS_MAX_SIZE" env-default:"10485760"`
	S3      S3     `yaml:"s3"`
}

type S3 struct {
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Region        string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET" env-default:"case-sheets"`
	AccessKey     string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	PathStyle     bool   `yaml:"path_style" env:"S3_FORCE_PATH_STYLE" env-default:"true"`
}

type Mail struct {
	Provider     string `yaml:"provider" env:"MAIL_PROVIDER" env-default:"smtp"`
	From         string `yaml:"from" env:"MAIL_FROM"`
	PracticeName string `yaml:"practice_name" env:"PRACTICE_NAME" env-default:"Saathi Mindcare"`
	Clinician    string `yaml:"clinician" env:"CLINICIAN_NAME" env-default:"Dr. Nidhi Raman"`
	SMTP         SMTP   `yaml:"smtp"`
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"EMAIL_USER"`
	Password string `yaml:"password" env:"EMAIL_PASS"`
}

type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	BackendDisk = "disk"
	BackendS3   = "s3"

	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// MustLoad loads the config or terminates the process.
func MustLoad() *Config {
	cfg, err := Load(fetchConfigPath())
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}

	return cfg
}

// Load reads the optional .env file, then the YAML file at path (if any),
// then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	_ = godotenv.Load()

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: config file does not exist: %s", op, path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

// LoadDatabase reads only the database section, for tools that never serve HTTP.
func LoadDatabase(path string) (*Database, error) {
	const op = "config.LoadDatabase"

	_ = godotenv.Load()

	var cfg struct {
		Database Database `yaml:"database"`
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: config file does not exist: %s", op, path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg.Database, nil
}

// DataSource returns the driver-specific connection string.
func (d Database) DataSource() string {
	if d.DSN != "" {
		return d.DSN
	}

	if d.Driver == DriverSQLite {
		return "file:psyche_connect.db?_busy_timeout=5000&_txlock=immediate"
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

func (d Database) validate() error {
	switch d.Driver {
	case DriverPostgres, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

func (c *Config) validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}

	switch c.Attachments.Backend {
	case BackendDisk:
	case BackendS3:
		if c.Attachments.S3.Endpoint == "" || c.Attachments.S3.AccessKey == "" || c.Attachments.S3.SecretKey == "" {
			return errors.New("s3 attachments require endpoint, access_key and secret_key")
		}
	default:
		return fmt.Errorf("unsupported attachments backend %q", c.Attachments.Backend)
	}

	switch c.Mail.Provider {
	case ProviderSMTP, ProviderResend:
	default:
		return fmt.Errorf("unsupported mail provider %q", c.Mail.Provider)
	}

	if c.Mail.Provider == ProviderResend && c.Mail.ResendAPIKey == "" {
		return errors.New("resend mail provider requires resend_api_key")
	}

	if c.Mail.From == "" {
		c.Mail.From = c.Mail.SMTP.Username
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth token_ttl must be positive")
	}

	return nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
