package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	ChatAPIURL    string `env:"CHAT_API_URL,required"`
	ChatAPIKey    string `env:"CHAT_API_KEY,required"`
	ChatModel     string `env:"CHAT_MODEL" envDefault:"claude-sonnet-4"`
	ChatMaxTokens int    `env:"CHAT_MAX_TOKENS" envDefault:"1024"`
	SystemPrompt  string `env:"SYSTEM_PROMPT"`

	ScoreAPIURL string `env:"SCORE_API_URL"`
	ScoreAPIKey string `env:"SCORE_API_KEY"`

	JWTSecret          string `env:"JWT_SECRET,required"`
	JWTAccessTTLMin    int    `env:"JWT_ACCESS_TTL_MIN" envDefault:"15"`
	JWTRefreshTTLHours int    `env:"JWT_REFRESH_TTL_HOURS" envDefault:"720"`

	StudyAccessCodeHash string `env:"STUDY_ACCESS_CODE_HASH"`
	ResearcherEmail     string `env:"RESEARCHER_EMAIL"`
	SessionTTLHours     int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	ScoreCacheTTLMin      int `env:"SCORE_CACHE_TTL_MIN" envDefault:"60"`
	ScoreRateWindowSec    int `env:"SCORE_RATE_WINDOW_SEC" envDefault:"60"`
	ScoreRateMaxPerWindow int `env:"SCORE_RATE_MAX_PER_WINDOW" envDefault:"12"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
