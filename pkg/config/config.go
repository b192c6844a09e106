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

	CORS     CORSConfig
	Log      LogConfig
	Capacity CapacityConfig
	Vision   VisionConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Export   ExportConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CapacityConfig carries the allocation limits threaded through the
// allocation engine and the date selector. Defaults reproduce the
// standard five-lab layout: 25 students per lab split 13/12 across the
// forenoon and afternoon sessions, 125 students per exam day.
type CapacityConfig struct {
	StudentsPerLab    int
	ForenoonCapacity  int
	AfternoonCapacity int
	LabsPerDay        int
	DefaultLabs       []string
	MinGapDays        int
}

// DailyCapacity returns the number of students one exam day absorbs.
func (c CapacityConfig) DailyCapacity() int {
	return c.StudentsPerLab * c.LabsPerDay
}

// VisionConfig configures the image analysis backend chain.
type VisionConfig struct {
	APIKey         string
	BaseURL        string
	Models         []string
	AttemptTimeout time.Duration
	MaxTokens      int
}

// Enabled reports whether image analysis can be attempted at all.
func (c VisionConfig) Enabled() bool {
	return c.APIKey != ""
}

// CacheConfig governs the optional extraction-result cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ExportConfig tunes schedule export rendering.
type ExportConfig struct {
	DefaultTitle string
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Capacity = CapacityConfig{
		StudentsPerLab:    v.GetInt("CAPACITY_STUDENTS_PER_LAB"),
		ForenoonCapacity:  v.GetInt("CAPACITY_FORENOON"),
		AfternoonCapacity: v.GetInt("CAPACITY_AFTERNOON"),
		LabsPerDay:        v.GetInt("CAPACITY_LABS_PER_DAY"),
		DefaultLabs:       splitAndTrim(v.GetString("CAPACITY_DEFAULT_LABS")),
		MinGapDays:        v.GetInt("CAPACITY_MIN_GAP_DAYS"),
	}

	cfg.Vision = VisionConfig{
		APIKey:         v.GetString("GROQ_API_KEY"),
		BaseURL:        v.GetString("GROQ_BASE_URL"),
		Models:         splitAndTrim(v.GetString("GROQ_MODELS")),
		AttemptTimeout: parseDuration(v.GetString("GROQ_ATTEMPT_TIMEOUT"), 60*time.Second),
		MaxTokens:      v.GetInt("GROQ_MAX_TOKENS"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_VISION_CACHE"),
		TTL:     parseDuration(v.GetString("VISION_CACHE_TTL"), time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Export = ExportConfig{
		DefaultTitle: v.GetString("EXPORT_DEFAULT_TITLE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CAPACITY_STUDENTS_PER_LAB", 25)
	v.SetDefault("CAPACITY_FORENOON", 13)
	v.SetDefault("CAPACITY_AFTERNOON", 12)
	v.SetDefault("CAPACITY_LABS_PER_DAY", 5)
	v.SetDefault("CAPACITY_DEFAULT_LABS", "Lab 1,Lab 2,Lab 3,Lab 4,Lab 5")
	v.SetDefault("CAPACITY_MIN_GAP_DAYS", 1)

	v.SetDefault("GROQ_API_KEY", "")
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("GROQ_MODELS", strings.Join([]string{
		"meta-llama/llama-4-maverick-17b-128e-instruct",
		"openai/gpt-oss-120b",
		"llama-3.3-70b-versatile",
		"llama-4-scout-17b-16e-instruct",
		"llama-3.2-11b-vision-preview",
		"llama-3.2-90b-vision-preview",
	}, ","))
	v.SetDefault("GROQ_ATTEMPT_TIMEOUT", "60s")
	v.SetDefault("GROQ_MAX_TOKENS", 8192)

	v.SetDefault("ENABLE_VISION_CACHE", false)
	v.SetDefault("VISION_CACHE_TTL", "1h")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("EXPORT_DEFAULT_TITLE", "Practical Exam Schedule")
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
