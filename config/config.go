package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	AppName string
	Env     string

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTKey    string
	SaltRound int

	ContactStore  string // sql, mongo
	MongoURI      string
	MongoDatabase string

	MailProvider   string // smtp, sendgrid, none
	SendgridAPIKey string
	EmailSender    string
	Password       string // SMTP Password
	SMTPHost       string
	SMTPPort       string
	AdminEmail     string

	ContactDigestCron string

	APIBaseURL string // used by the learner client
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		AppName: getEnv("APP_NAME", "African Intelligence"),
		Env:     getEnv("ENV", "production"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tourlms"),

		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		ContactStore:  getEnv("CONTACT_STORE", "sql"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "tourlms"),

		MailProvider:   getEnv("MAIL_PROVIDER", "none"),
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", ""),
		Password:       getEnv("PASSWORD", ""),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),

		ContactDigestCron: getEnv("CONTACT_DIGEST_CRON", "0 9 * * *"),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),
	}

	// Fall back to the sender mailbox like the contact form always did
	if AppConfig.AdminEmail == "" {
		AppConfig.AdminEmail = AppConfig.EmailSender
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MailProvider != "none" && AppConfig.EmailSender == "" {
		log.Println("Warning: MAIL_PROVIDER is set but EMAIL_SENDER is empty. Emails will fail.")
	}
}

// IsDevelopment reports whether ENV=development
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
