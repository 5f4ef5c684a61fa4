package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "brandforge"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App        AppConfig
	Redis      RedisConfig
	GCP        GCPConfig
	Firestore  FirestoreConfig
	GCS        GCSConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Generation GenerationConfig
	GenLimit   GenRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BRANDFORGE_APP_ENV" required:"true"`
	Port         string `envconfig:"BRANDFORGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BRANDFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BRANDFORGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"BRANDFORGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BRANDFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"BRANDFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRANDFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRANDFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRANDFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRANDFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRANDFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRANDFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BRANDFORGE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"BRANDFORGE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BRANDFORGE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type FirestoreConfig struct {
	BrandsCollection string `envconfig:"BRANDFORGE_FIRESTORE_BRANDS_COLLECTION" default:"brands"`
	ThemesCollection string `envconfig:"BRANDFORGE_FIRESTORE_THEMES_COLLECTION" default:"themes"`
}

type GCSConfig struct {
	BucketName string `envconfig:"BRANDFORGE_GCS_BUCKET_NAME" required:"true"`
}

type OpenAIConfig struct {
	APIKey string `envconfig:"BRANDFORGE_OPENAI_API_KEY" required:"true"`
	Model  string `envconfig:"BRANDFORGE_OPENAI_MODEL" default:"gpt-4o-mini"`
}

type GeminiConfig struct {
	APIKey         string        `envconfig:"BRANDFORGE_GEMINI_API_KEY" required:"true"`
	TextModel      string        `envconfig:"BRANDFORGE_GEMINI_TEXT_MODEL" default:"gemini-1.5-flash"`
	ImageModel     string        `envconfig:"BRANDFORGE_GEMINI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
	CaptionTimeout time.Duration `envconfig:"BRANDFORGE_GEMINI_CAPTION_TIMEOUT" default:"30s"`
	ImageTimeout   time.Duration `envconfig:"BRANDFORGE_GEMINI_IMAGE_TIMEOUT" default:"60s"`
}

type GenerationConfig struct {
	ThemeOptionCount  int    `envconfig:"BRANDFORGE_GENERATION_THEME_OPTIONS" default:"5"`
	PostImageFolder   string `envconfig:"BRANDFORGE_GENERATION_POST_IMAGE_FOLDER" default:"generated_images"`
	OptionImageFolder string `envconfig:"BRANDFORGE_GENERATION_OPTION_IMAGE_FOLDER" default:"theme_options"`
}

type GenRateLimitConfig struct {
	Window    time.Duration `envconfig:"BRANDFORGE_GEN_RATE_LIMIT_WINDOW" default:"1m"`
	UserLimit int           `envconfig:"BRANDFORGE_GEN_RATE_LIMIT_USER_LIMIT" default:"10"`
	IPLimit   int           `envconfig:"BRANDFORGE_GEN_RATE_LIMIT_IP_LIMIT" default:"30"`
}
