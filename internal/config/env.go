package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds runtime configuration for the back office.
type Env struct {
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`
	GinMode string `envconfig:"GIN_MODE" default:""`

	DBUser string `envconfig:"DB_USER" default:"root"`
	DBPass string `envconfig:"DB_PASS" default:""`
	DBHost string `envconfig:"DB_HOST" default:"127.0.0.1:3306"`
	DBName string `envconfig:"DB_NAME" default:"foodshare"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"super-secret-key-change-me"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`

	ResendAPIKey string `envconfig:"RESEND_API_KEY" default:""`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"FoodShare <no-reply@foodshare.local>"`

	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}
	return env
}
