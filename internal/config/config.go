package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends for posts.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Image backends for uploads.
const (
	ImagesLocal = "local"
	ImagesMinIO = "minio"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	JWT      JWTConfig
	Storage  StorageConfig
	MongoDB  MongoDBConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// AdminConfig is the single identity allowed to log in.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type StorageConfig struct {
	Backend       string
	DataFile      string
	ImageBackend  string
	UploadDir     string
	PublicBaseURL string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type PostgresConfig struct {
	DSN     string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5002")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", 60)
	v.SetDefault("STORAGE_BACKEND", BackendFile)
	v.SetDefault("DATA_FILE", "data/posts.json")
	v.SetDefault("IMAGE_BACKEND", ImagesLocal)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MONGODB_DATABASE", "blog")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("POSTGRES_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("MINIO_BUCKET", "blog-images")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			Environment:    v.GetString("SERVER_ENVIRONMENT"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AllowedOrigins: splitCSV(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Admin: AdminConfig{
			Username:     strings.TrimSpace(v.GetString("ADMIN_USERNAME")),
			PasswordHash: strings.TrimSpace(v.GetString("ADMIN_PASSWORD_HASH")),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(v.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		Storage: StorageConfig{
			Backend:       strings.ToLower(v.GetString("STORAGE_BACKEND")),
			DataFile:      v.GetString("DATA_FILE"),
			ImageBackend:  strings.ToLower(v.GetString("IMAGE_BACKEND")),
			UploadDir:     v.GetString("UPLOAD_DIR"),
			PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Postgres: PostgresConfig{
			DSN:     v.GetString("POSTGRES_DSN"),
			Timeout: time.Duration(v.GetInt("POSTGRES_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			PublicURL: strings.TrimRight(v.GetString("MINIO_PUBLIC_URL"), "/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	if c.Admin.Username == "" || c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD_HASH are required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_TTL must be positive")
	}
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file backend")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
		}
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	switch c.Storage.ImageBackend {
	case ImagesLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local images")
		}
	case ImagesMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required for minio images")
		}
	default:
		return fmt.Errorf("unknown IMAGE_BACKEND %q", c.Storage.ImageBackend)
	}
	return nil
}

// RemoteBackend reports whether posts live in an external database.
func (c *Config) RemoteBackend() bool {
	return c.Storage.Backend != BackendFile
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
