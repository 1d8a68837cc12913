package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	APIPort    string
	JWTKey     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBConnStr     string
	SQLitePath    string
	DBAutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FanoutChannel string

	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string
	AvatarMaxBytes int64

	DiscordBotToken          string
	DiscordAnnounceChannelID string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:    getEnv("API_PORT", "5000"),
		JWTKey:     []byte(getEnv("JWT_SECRET", "defaultsecret")),
		AccessTTL:  time.Duration(getEnvAsInt("JWT_ACCESS_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL: time.Duration(getEnvAsInt("JWT_REFRESH_TTL_HOURS", 720)) * time.Hour,

		DBDriver:      getEnv("DB_DRIVER", DriverPostgres),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "runboard"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "runboard"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "runboard.db"),
		DBAutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		FanoutChannel: getEnv("FANOUT_CHANNEL", "runboard:fanout"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "runboard-avatars"),
		MinioUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		AvatarMaxBytes: int64(getEnvAsInt("AVATAR_MAX_BYTES", 2<<20)),

		DiscordBotToken:          getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordAnnounceChannelID: getEnv("DISCORD_ANNOUNCE_CHANNEL_ID", ""),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
