package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 运行时配置。
// 风控的各项阈值与惩罚分值均为参考默认值，上线前应与后端策略对齐。
type Config struct {
	Port           string
	DataDir        string
	APIBaseURL     string
	APIToken       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	RemoteTimeout time.Duration

	// 限频策略
	Cooldown time.Duration
	DailyCap int

	// 提交节奏分析
	BurstWindow         time.Duration
	BurstCount          int
	AutomationSample    int
	AutomationTolerance time.Duration

	// 账号校验规则
	MinAccountAgeDays int
	MinFollowerCount  int
	MinPostCount      int

	// 风险评分
	DuplicatePenalty     int
	RateLimitPenalty     int
	VelocityPenalty      int
	AccountFactorPenalty int
	MediumThreshold      int
	HighThreshold        int
	CriticalThreshold    int

	BlockDuration    time.Duration
	HistoryRetention time.Duration
}

// Load 从环境变量加载配置，存在 .env 时先行预载
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		APIBaseURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("REWARDS_API_URL")), "/"),
		APIToken:       os.Getenv("REWARDS_API_TOKEN"),
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "ig-reward-gate"),

		RemoteTimeout: getEnvAsDuration("REMOTE_TIMEOUT", 4*time.Second),

		Cooldown: getEnvAsDuration("SUBMIT_COOLDOWN", 60*time.Minute),
		DailyCap: getEnvAsInt("DAILY_SUBMIT_CAP", 3),

		BurstWindow:         getEnvAsDuration("BURST_WINDOW", 10*time.Second),
		BurstCount:          getEnvAsInt("BURST_COUNT", 3),
		AutomationSample:    getEnvAsInt("AUTOMATION_SAMPLE", 4),
		AutomationTolerance: getEnvAsDuration("AUTOMATION_TOLERANCE", 500*time.Millisecond),

		MinAccountAgeDays: getEnvAsInt("MIN_ACCOUNT_AGE_DAYS", 30),
		MinFollowerCount:  getEnvAsInt("MIN_FOLLOWER_COUNT", 100),
		MinPostCount:      getEnvAsInt("MIN_POST_COUNT", 10),

		DuplicatePenalty:     getEnvAsInt("DUPLICATE_PENALTY", 85),
		RateLimitPenalty:     getEnvAsInt("RATE_LIMIT_PENALTY", 50),
		VelocityPenalty:      getEnvAsInt("VELOCITY_PENALTY", 30),
		AccountFactorPenalty: getEnvAsInt("ACCOUNT_FACTOR_PENALTY", 15),
		MediumThreshold:      getEnvAsInt("MEDIUM_THRESHOLD", 30),
		HighThreshold:        getEnvAsInt("HIGH_THRESHOLD", 60),
		CriticalThreshold:    getEnvAsInt("CRITICAL_THRESHOLD", 80),

		BlockDuration:    getEnvAsDuration("BLOCK_DURATION", time.Hour),
		HistoryRetention: getEnvAsDuration("HISTORY_RETENTION", 90*24*time.Hour),
	}

	if cfg.APIBaseURL == "" {
		return Config{}, errors.New("缺少 REWARDS_API_URL")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
