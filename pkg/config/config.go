package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mailjet  MailjetConfig
	Redis    RedisConfig
	Encoder  EncoderConfig
	Engine   EngineConfig
}

type AppConfig struct {
	Name                    string
	Version                 string
	Environment             string
	AppDeploymentUrl        string
	AppEmailVerificationKey string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type EncoderConfig struct {
	BaseUrl        string
	APIKey         string
	TimeoutSeconds int
}

type EngineConfig struct {
	WindowDays          int
	AnchorCount         int
	PanelSize           int
	TauDays             float64
	VectorCacheTTLHours int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	encoderTimeout, err := strconv.Atoi(getEnv("ENCODER_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, errors.New("invalid encoder timeout")
	}

	windowDays, err := strconv.Atoi(getEnv("ENGINE_WINDOW_DAYS", "30"))
	if err != nil {
		return nil, errors.New("invalid engine window days")
	}

	anchorCount, err := strconv.Atoi(getEnv("ENGINE_ANCHOR_COUNT", "5"))
	if err != nil {
		return nil, errors.New("invalid engine anchor count")
	}

	panelSize, err := strconv.Atoi(getEnv("ENGINE_PANEL_SIZE", "6"))
	if err != nil {
		return nil, errors.New("invalid engine panel size")
	}

	tauDays, err := strconv.ParseFloat(getEnv("ENGINE_TAU_DAYS", "7"), 64)
	if err != nil {
		return nil, errors.New("invalid engine tau days")
	}

	vectorTTL, err := strconv.Atoi(getEnv("ENGINE_VECTOR_CACHE_TTL_HOURS", "168"))
	if err != nil {
		return nil, errors.New("invalid vector cache ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                    getEnv("APP_NAME", "OfferPilot API"),
			Version:                 getEnv("APP_VERSION", "1.0.0"),
			Environment:             getEnv("APP_ENV", "development"),
			AppDeploymentUrl:        getEnv("APP_DEPLOYMENT_URL", ""),
			AppEmailVerificationKey: getEnv("APP_EMAIL_VERIFICATION_KEY", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "offer_pilot"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Encoder: EncoderConfig{
			BaseUrl:        getEnv("ENCODER_BASE_URL", ""),
			APIKey:         getEnv("ENCODER_API_KEY", ""),
			TimeoutSeconds: encoderTimeout,
		},
		Engine: EngineConfig{
			WindowDays:          windowDays,
			AnchorCount:         anchorCount,
			PanelSize:           panelSize,
			TauDays:             tauDays,
			VectorCacheTTLHours: vectorTTL,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.AppEmailVerificationKey == "" {
		return nil, errors.New("missing app email verification key")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Encoder.BaseUrl == "" {
		return nil, errors.New("missing encoder base url")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
