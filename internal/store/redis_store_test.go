package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"ig-reward-gate/internal/fraud"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "test-gate", "device-redis", 90*24*time.Hour), mr
}

func TestRedisStoreAppendAndLoad(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	record := fraud.SubmissionRecord{
		ID:        "sub_1",
		URL:       "https://www.instagram.com/p/RedisPost01/",
		PostID:    "RedisPost01",
		Timestamp: time.Now().UnixMilli(),
		DeviceID:  "device-redis",
	}
	if err := s.Append(ctx, record); err != nil {
		t.Fatalf("追加记录失败: %v", err)
	}

	records := s.Load(ctx)
	if len(records) != 1 || records[0] != record {
		t.Fatalf("读回的记录不一致: %+v", records)
	}
}

func TestRedisStoreMissingKeyLoadsEmpty(t *testing.T) {
	s, _ := newRedisStore(t)

	if records := s.Load(context.Background()); len(records) != 0 {
		t.Fatalf("键不存在时应返回空历史，实际 %d 条", len(records))
	}
	if block := s.Block(context.Background()); block != nil {
		t.Fatalf("键不存在时封禁应为 nil，实际 %+v", block)
	}
}

func TestRedisStoreCorruptValueFailsOpen(t *testing.T) {
	s, mr := newRedisStore(t)

	if err := mr.Set("test-gate:history:device-redis", "{not valid json"); err != nil {
		t.Fatalf("写入损坏数据失败: %v", err)
	}
	if err := mr.Set("test-gate:block:device-redis", "also broken"); err != nil {
		t.Fatalf("写入损坏数据失败: %v", err)
	}

	if records := s.Load(context.Background()); len(records) != 0 {
		t.Fatalf("损坏数据应按空历史处理，实际 %d 条", len(records))
	}
	if block := s.Block(context.Background()); block != nil {
		t.Fatalf("损坏封禁应按 nil 处理，实际 %+v", block)
	}
}

func TestRedisStoreClear(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, fraud.SubmissionRecord{ID: "sub_1", PostID: "ClearMe0001", Timestamp: time.Now().UnixMilli()}); err != nil {
		t.Fatalf("追加记录失败: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("清空历史失败: %v", err)
	}
	if records := s.Load(ctx); len(records) != 0 {
		t.Fatalf("清空后仍有 %d 条记录", len(records))
	}
}

func TestRedisStoreBlockRoundTripWithTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	block := fraud.BlockRecord{Until: time.Now().Add(time.Hour).UnixMilli(), Reason: "redis block"}
	if err := s.SetBlock(ctx, block); err != nil {
		t.Fatalf("写入封禁失败: %v", err)
	}

	got := s.Block(ctx)
	if got == nil || got.Reason != "redis block" {
		t.Fatalf("读回的封禁不一致: %+v", got)
	}

	// 封禁键应随过期时间自动回收
	if ttl := mr.TTL("test-gate:block:device-redis"); ttl <= 0 {
		t.Fatalf("封禁键应设置 TTL，实际 %v", ttl)
	}

	if err := s.ClearBlock(ctx); err != nil {
		t.Fatalf("清除封禁失败: %v", err)
	}
	if got := s.Block(ctx); got != nil {
		t.Fatalf("清除后封禁应为 nil，实际 %+v", got)
	}
}
