package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	Redis       RedisConf         `yaml:"redis"`
	Cache       CacheConfig       `yaml:"cache"`
	Translation TranslationConfig `yaml:"translation"`
	Auth        AuthConfig        `yaml:"auth"`
	Mail        MailConfig        `yaml:"mail"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Analytics   AnalyticsConfig   `yaml:"analytics"`
}

type HTTPConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	CORSOrigins []string      `yaml:"cors_origins"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

type CacheConfig struct {
	ContentTTL            time.Duration `yaml:"content_ttl" env-default:"24h"`
	PostsKey              string        `yaml:"posts_key" env-default:"blog_posts_cache"`
	PostsTTL              time.Duration `yaml:"posts_ttl" env-default:"24h"`
	NotificationRetention time.Duration `yaml:"notification_retention" env-default:"24h"`
	FetchAttempts         int           `yaml:"fetch_attempts" env-default:"3"`
	FetchDelay            time.Duration `yaml:"fetch_delay" env-default:"500ms"`
}

type TranslationConfig struct {
	// function, deepl, openai, anthropic
	Provider        string        `yaml:"provider" env:"TRANSLATION_PROVIDER" env-default:"function"`
	FunctionURL     string        `yaml:"function_url" env:"TRANSLATION_FUNCTION_URL"`
	APIKey          string        `yaml:"api_key" env:"TRANSLATION_API_KEY"`
	BaseURL         string        `yaml:"base_url"`
	Model           string        `yaml:"model"`
	RateLimit       int           `yaml:"rate_limit" env-default:"5"`
	Timeout         time.Duration `yaml:"timeout" env-default:"30s"`
	SourceLanguage  string        `yaml:"source_language" env-default:"en"`
	TargetLanguages []string      `yaml:"target_languages" env-default:"fr,es"`
	AutoContent     bool          `yaml:"auto_content"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	VerifyTimeout time.Duration `yaml:"verify_timeout" env-default:"5s"`
}

type MailConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"MAIL_FROM"`
	To       string `yaml:"to" env:"MAIL_TO"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

type AnalyticsConfig struct {
	DefaultDays int `yaml:"default_days" env-default:"30"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
