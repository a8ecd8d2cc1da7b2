package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ig-reward-gate/internal/fraud"
)

// RedisStore 使用 Redis 持久化提交历史与封禁状态，
// 多实例部署时可共享同一份风控状态。
// 读路径的 Redis 故障与坏值一律按空数据处理，保持宽松放行。
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	deviceID  string
	retention time.Duration
	timeout   time.Duration
}

func NewRedisStore(client *redis.Client, keyPrefix, deviceID string, retention time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		deviceID:  deviceID,
		retention: retention,
		timeout:   800 * time.Millisecond,
	}
}

func (s *RedisStore) historyKey() string {
	return fmt.Sprintf("%s:history:%s", s.keyPrefix, s.deviceID)
}

func (s *RedisStore) blockKey() string {
	return fmt.Sprintf("%s:block:%s", s.keyPrefix, s.deviceID)
}

func (s *RedisStore) Load(ctx context.Context) []fraud.SubmissionRecord {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.historyKey()).Bytes()
	if err != nil {
		return nil
	}

	var records []fraud.SubmissionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

func (s *RedisStore) Append(ctx context.Context, record fraud.SubmissionRecord) error {
	records := fraud.TrimExpired(s.Load(ctx), s.retention, time.Now())
	records = append(records, record)

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("编码提交历史失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.historyKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("写入提交历史失败: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.historyKey()).Err(); err != nil {
		return fmt.Errorf("清空提交历史失败: %w", err)
	}
	return nil
}

func (s *RedisStore) Block(ctx context.Context) *fraud.BlockRecord {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.blockKey()).Bytes()
	if err != nil {
		return nil
	}

	var record fraud.BlockRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil
	}
	return &record
}

func (s *RedisStore) SetBlock(ctx context.Context, record fraud.BlockRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("编码封禁记录失败: %w", err)
	}

	// 封禁按语义是惰性过期，这里顺带让 Redis 在到期后回收键
	ttl := time.Until(time.UnixMilli(record.Until))
	if ttl < 0 {
		ttl = 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.blockKey(), data, ttl).Err(); err != nil {
		return fmt.Errorf("写入封禁记录失败: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearBlock(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.blockKey()).Err(); err != nil {
		return fmt.Errorf("清除封禁记录失败: %w", err)
	}
	return nil
}
