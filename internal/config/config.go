// Package config builds the immutable runtime configuration from the
// process environment. It is constructed once in main and handed to every
// component; nothing reads environment variables after startup.
package config

import (
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// insecureDefaultSecretKey is used when SECRET_KEY is unset so that local
// development works out of the box. The startup warning makes the tradeoff
// visible.
const insecureDefaultSecretKey = "a_temporary_insecure_default_key_replace_me"

// Config stores all configuration of the application.
type Config struct {
	// Server
	ServerPort string

	// Database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Redis (session registry)
	RedisAddr string
	RedisDB   int

	// SecretKey signs the admin session cookie.
	SecretKey string

	// AdminAPIKey protects the machine API. Empty disables enforcement.
	AdminAPIKey string

	// Admin identity. The plaintext password is hashed at load time and
	// never retained.
	AdminUsername     string
	AdminPasswordHash []byte

	// GoogleAPIKey authorizes the reverse-geocoding provider. Empty
	// disables the geocode endpoint.
	GoogleAPIKey string

	// Media upload locations. UploadDir is the on-disk directory,
	// UploadPublicPrefix the path stored on complaints relative to the
	// static asset root.
	UploadDir          string
	UploadPublicPrefix string

	// Telegram admin notifications. Both must be set to enable them.
	TelegramBotToken    string
	TelegramAdminChatID int64
}

// Load reads the environment and returns the assembled configuration.
// Permissive fallbacks (missing secret key, missing API key, missing
// geocoding key) are logged loudly but do not stop startup.
func Load() (*Config, error) {
	secretKey := getEnv("SECRET_KEY", "")
	if secretKey == "" {
		log.Println("WARNING: SECRET_KEY not set, using an insecure built-in default")
		secretKey = insecureDefaultSecretKey
	}

	adminAPIKey := getEnv("ADMIN_API_KEY", "")
	if adminAPIKey == "" {
		log.Println("WARNING: ADMIN_API_KEY not set, /api/complaints will not be secured")
	}

	googleKey := getEnv("GOOGLE_API_KEY", "")
	if googleKey == "" {
		log.Println("WARNING: GOOGLE_API_KEY not set, reverse geocoding will not work")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "pass")), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_ADMIN_CHAT_ID", "0"), 10, 64)

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "roadwatchdb"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		SecretKey:         secretKey,
		AdminAPIKey:       adminAPIKey,
		AdminUsername:     getEnv("ADMIN_USERNAME", "Admin"),
		AdminPasswordHash: hash,

		GoogleAPIKey: googleKey,

		UploadDir:          getEnv("UPLOAD_DIR", "static/uploads/img"),
		UploadPublicPrefix: getEnv("UPLOAD_PUBLIC_PREFIX", "uploads/img"),

		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChatID: chatID,
	}, nil
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=disable"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
