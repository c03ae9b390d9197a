package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Translation  TranslationConfig
	Regeneration RegenerationConfig
	Verification VerificationConfig
	IssueStats   IssueStatsConfig
	Export       ExportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	DialTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TranslationConfig describes the baseline language and the translator dictionary source.
type TranslationConfig struct {
	BaselineLanguageCode string
	DictionaryFile       string
}

// RegenerationConfig tunes the bulk regeneration pipeline.
type RegenerationConfig struct {
	AutoApprove bool
	Concurrency int
}

// VerificationConfig tunes scan runs over stored translations.
type VerificationConfig struct {
	IssueThreshold int
}

// IssueStatsConfig toggles caching of issue backlog statistics.
type IssueStatsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ExportConfig shapes rendered issue exports.
type ExportConfig struct {
	CSVDelimiter rune
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:        v.GetString("REDIS_HOST"),
		Port:        v.GetInt("REDIS_PORT"),
		Password:    v.GetString("REDIS_PASSWORD"),
		DB:          v.GetInt("REDIS_DB"),
		DialTimeout: parseDuration(v.GetString("REDIS_DIAL_TIMEOUT"), 5*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Translation = TranslationConfig{
		BaselineLanguageCode: strings.ToLower(strings.TrimSpace(v.GetString("BASELINE_LANGUAGE_CODE"))),
		DictionaryFile:       strings.TrimSpace(v.GetString("TRANSLATOR_DICTIONARY_FILE")),
	}

	concurrency := v.GetInt("REGENERATION_CONCURRENCY")
	if concurrency <= 0 {
		concurrency = 1
	}
	cfg.Regeneration = RegenerationConfig{
		AutoApprove: v.GetBool("REGENERATION_AUTO_APPROVE"),
		Concurrency: concurrency,
	}

	threshold := v.GetInt("VERIFICATION_ISSUE_THRESHOLD")
	if threshold < 0 || threshold > 100 {
		threshold = 70
	}
	cfg.Verification = VerificationConfig{IssueThreshold: threshold}

	cfg.IssueStats = IssueStatsConfig{
		CacheEnabled: v.GetBool("ENABLE_ISSUE_STATS_CACHE"),
		CacheTTL:     parseDuration(v.GetString("ISSUE_STATS_CACHE_TTL"), 2*time.Minute),
	}

	cfg.Export = ExportConfig{CSVDelimiter: parseDelimiter(v.GetString("EXPORT_CSV_DELIMITER"))}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "translations")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("BASELINE_LANGUAGE_CODE", "en")
	v.SetDefault("TRANSLATOR_DICTIONARY_FILE", "")

	v.SetDefault("REGENERATION_AUTO_APPROVE", true)
	v.SetDefault("REGENERATION_CONCURRENCY", 4)

	v.SetDefault("VERIFICATION_ISSUE_THRESHOLD", 70)

	v.SetDefault("ENABLE_ISSUE_STATS_CACHE", false)
	v.SetDefault("ISSUE_STATS_CACHE_TTL", "2m")

	v.SetDefault("EXPORT_CSV_DELIMITER", ",")
}

// parseDelimiter accepts a single separator rune; quotes and line breaks fall
// back to a comma.
func parseDelimiter(raw string) rune {
	runes := []rune(raw)
	if len(runes) != 1 || strings.ContainsRune("\"\r\n", runes[0]) {
		return ','
	}
	return runes[0]
}

// godotenv already loaded the file when present; viper only reports
// a path error when .env is absent.
func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
