package main

import (
	"context"
	"log"
	"time"

	"ig-reward-gate/internal/api"
	"ig-reward-gate/internal/config"
	"ig-reward-gate/internal/fraud"
	"ig-reward-gate/internal/rewardsapi"
	"ig-reward-gate/internal/store"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	remote := rewardsapi.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.RemoteTimeout)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		pingErr := client.Ping(ctx).Err()
		cancel()
		if pingErr != nil {
			log.Printf("Redis 连接失败，回退到文件存储: %v", pingErr)
		} else {
			log.Printf("Redis 已连接，风控状态走共享存储")
			redisClient = client
		}
	}

	policy := fraud.Policy{
		Cooldown:            cfg.Cooldown,
		DailyCap:            cfg.DailyCap,
		BurstWindow:         cfg.BurstWindow,
		BurstCount:          cfg.BurstCount,
		AutomationSample:    cfg.AutomationSample,
		AutomationTolerance: cfg.AutomationTolerance,

		MinAccountAgeDays: cfg.MinAccountAgeDays,
		MinFollowerCount:  cfg.MinFollowerCount,
		MinPostCount:      cfg.MinPostCount,

		DuplicatePenalty:     cfg.DuplicatePenalty,
		RateLimitPenalty:     cfg.RateLimitPenalty,
		VelocityPenalty:      cfg.VelocityPenalty,
		AccountFactorPenalty: cfg.AccountFactorPenalty,
		MediumThreshold:      cfg.MediumThreshold,
		HighThreshold:        cfg.HighThreshold,
		CriticalThreshold:    cfg.CriticalThreshold,

		BlockDuration: cfg.BlockDuration,
	}

	newEngine := func(deviceID string) (*fraud.Engine, error) {
		var historyStore fraud.HistoryStore
		if redisClient != nil {
			historyStore = store.NewRedisStore(redisClient, cfg.RedisKeyPrefix, deviceID, cfg.HistoryRetention)
		} else {
			fileStore, err := store.NewFileStore(cfg.DataDir, deviceID, cfg.HistoryRetention)
			if err != nil {
				return nil, err
			}
			historyStore = fileStore
		}
		return fraud.NewEngine(policy, historyStore, remote, deviceID), nil
	}

	srv := api.NewServer(cfg, newEngine)

	log.Printf("IG Reward Gate 启动: :%s", cfg.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("服务异常退出: %v", err)
	}
}
