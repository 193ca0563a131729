package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Mongo      MongoConfig
	App        AppConfig
	Wizard     WizardConfig
	Media      MediaConfig
	Submission SubmissionConfig
	Lmstfy     LmstfyConfig
	Catalog    CatalogConfig
	Firebase   FirebaseConfig
	Cron       CronConfig
}

type ServerConfig struct {
	Port           string
	PublicURL      string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MongoConfig struct {
	URI      string
	Database string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// WizardConfig bounds the lifetime and shape of inspection drafts.
type WizardConfig struct {
	DraftTTL          time.Duration
	Strict            bool
	MaxImagesPerIssue int
	MaxUploadBytes    int64
	AttachRate        float64
	AttachBurst       int
}

type MediaConfig struct {
	Backend       string // redis or s3
	PreviewSecret string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
}

type SubmissionConfig struct {
	Sinks []string
}

type LmstfyConfig struct {
	Host      string
	Port      int
	Namespace string
	Token     string
	Queue     string
}

type CatalogConfig struct {
	Source   string // static, postgres or mongo
	CacheTTL time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
}

type CronConfig struct {
	CacheWarm    string
	PreviewSweep string
}

const (
	SinkLog      = "log"
	SinkPostgres = "postgres"
	SinkQueue    = "queue"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromViper maps flat environment-style keys onto Config.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			PublicURL:      strings.TrimRight(v.GetString("PUBLIC_URL"), "/"),
			AllowedOrigins: splitList(v.GetString("API_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			DSN:      v.GetString("DB_DSN"),
			MaxConns: v.GetInt("DB_MAX_CONNS"),
			MinConns: v.GetInt("DB_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DB"),
		},
		App: AppConfig{
			Environment: v.GetString("APP_ENV"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			Version:     v.GetString("APP_VERSION"),
		},
		Wizard: WizardConfig{
			DraftTTL:          v.GetDuration("DRAFT_TTL"),
			Strict:            v.GetBool("WIZARD_STRICT"),
			MaxImagesPerIssue: v.GetInt("MAX_IMAGES_PER_ISSUE"),
			MaxUploadBytes:    v.GetInt64("MAX_UPLOAD_BYTES"),
			AttachRate:        v.GetFloat64("ATTACH_RATE"),
			AttachBurst:       v.GetInt("ATTACH_BURST"),
		},
		Media: MediaConfig{
			Backend:       strings.ToLower(v.GetString("PREVIEW_BACKEND")),
			PreviewSecret: v.GetString("PREVIEW_SECRET"),
			S3Bucket:      v.GetString("S3_BUCKET"),
			S3Region:      v.GetString("S3_REGION"),
			S3Endpoint:    v.GetString("S3_ENDPOINT"),
		},
		Submission: SubmissionConfig{
			Sinks: splitList(strings.ToLower(v.GetString("SUBMISSION_SINKS"))),
		},
		Lmstfy: LmstfyConfig{
			Host:      v.GetString("LMSTFY_HOST"),
			Port:      v.GetInt("LMSTFY_PORT"),
			Namespace: v.GetString("LMSTFY_NAMESPACE"),
			Token:     v.GetString("LMSTFY_TOKEN"),
			Queue:     v.GetString("LMSTFY_QUEUE"),
		},
		Catalog: CatalogConfig{
			Source:   strings.ToLower(v.GetString("CATALOG_SOURCE")),
			CacheTTL: v.GetDuration("CATALOG_CACHE_TTL"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		},
		Cron: CronConfig{
			CacheWarm:    v.GetString("CRON_CACHE_WARM"),
			PreviewSweep: v.GetString("CRON_PREVIEW_SWEEP"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("PUBLIC_URL", "http://localhost:8080")
	v.SetDefault("API_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MONGO_DB", "safehaven")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("DRAFT_TTL", 24*time.Hour)
	v.SetDefault("WIZARD_STRICT", true)
	v.SetDefault("MAX_IMAGES_PER_ISSUE", 10)
	v.SetDefault("MAX_UPLOAD_BYTES", 8<<20)
	v.SetDefault("ATTACH_RATE", 2.0)
	v.SetDefault("ATTACH_BURST", 5)
	v.SetDefault("PREVIEW_BACKEND", "redis")
	v.SetDefault("PREVIEW_SECRET", "dev-preview-secret")
	v.SetDefault("S3_REGION", "ap-south-1")
	v.SetDefault("SUBMISSION_SINKS", SinkLog)
	v.SetDefault("LMSTFY_PORT", 7777)
	v.SetDefault("LMSTFY_NAMESPACE", "safehaven")
	v.SetDefault("LMSTFY_QUEUE", "inspection-intake")
	v.SetDefault("CATALOG_SOURCE", "static")
	v.SetDefault("CATALOG_CACHE_TTL", 10*time.Minute)
	v.SetDefault("CRON_CACHE_WARM", "0 */5 * * * *")
	v.SetDefault("CRON_PREVIEW_SWEEP", "0 0 * * * *")
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Wizard.MaxImagesPerIssue <= 0 {
		return fmt.Errorf("MAX_IMAGES_PER_ISSUE must be positive")
	}

	if c.Wizard.DraftTTL <= 0 {
		return fmt.Errorf("DRAFT_TTL must be positive")
	}

	if c.Media.PreviewSecret == "" {
		return fmt.Errorf("PREVIEW_SECRET is required")
	}

	switch c.Media.Backend {
	case "redis":
	case "s3":
		if c.Media.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when PREVIEW_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown PREVIEW_BACKEND %q", c.Media.Backend)
	}

	if len(c.Submission.Sinks) == 0 {
		return fmt.Errorf("SUBMISSION_SINKS must name at least one sink")
	}
	for _, s := range c.Submission.Sinks {
		switch s {
		case SinkLog:
		case SinkPostgres:
			if c.Database.DSN == "" {
				return fmt.Errorf("DB_DSN is required for the postgres submission sink")
			}
		case SinkQueue:
			if c.Lmstfy.Host == "" {
				return fmt.Errorf("LMSTFY_HOST is required for the queue submission sink")
			}
		default:
			return fmt.Errorf("unknown submission sink %q", s)
		}
	}

	switch c.Catalog.Source {
	case "static":
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required when CATALOG_SOURCE=postgres")
		}
	case "mongo":
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when CATALOG_SOURCE=mongo")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}

	return nil
}

// HasSink reports whether the named submission sink is enabled.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Submission.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
