package fraud

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRateLimitEmptyHistoryAllows(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRemote{})

	result := engine.CheckRateLimit(context.Background())
	if !result.Allowed {
		t.Fatal("空历史应放行")
	}
	if result.Remaining != DefaultPolicy().DailyCap {
		t.Fatalf("剩余额度应为每日上限 %d，实际 %d", DefaultPolicy().DailyCap, result.Remaining)
	}
}

func TestRateLimitWithinCooldownRejects(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	seedRecord(t, store, "Cooldown001", 30*time.Minute)

	result := engine.CheckRateLimit(context.Background())
	if result.Allowed {
		t.Fatal("冷却期内应拒绝")
	}
	if !strings.Contains(result.Message, "wait") {
		t.Fatalf("应返回等待提示，实际 %q", result.Message)
	}
}

func TestRateLimitAtCooldownBoundaryAllows(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	seedRecord(t, store, "Boundary001", DefaultPolicy().Cooldown)

	result := engine.CheckRateLimit(context.Background())
	if !result.Allowed {
		t.Fatalf("冷却期边界处应放行: %+v", result)
	}
}

func TestRateLimitDailyCapRejects(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	// 三条都落在滚动 24 小时窗口内，且都早于冷却期
	seedRecord(t, store, "Daily000001", 2*time.Hour)
	seedRecord(t, store, "Daily000002", 5*time.Hour)
	seedRecord(t, store, "Daily000003", 10*time.Hour)

	result := engine.CheckRateLimit(context.Background())
	if result.Allowed {
		t.Fatal("达到每日上限应拒绝")
	}
	if !strings.Contains(result.Message, "Daily limit") {
		t.Fatalf("应返回 Daily limit 提示，实际 %q", result.Message)
	}
}

func TestRateLimitUnderDailyCapReportsRemaining(t *testing.T) {
	engine, store := newTestEngine(t, &stubRemote{})
	seedRecord(t, store, "Under000001", 2*time.Hour)
	seedRecord(t, store, "Under000002", 5*time.Hour)
	// 窗口外的旧记录不计入
	seedRecord(t, store, "Under000003", 30*time.Hour)

	result := engine.CheckRateLimit(context.Background())
	if !result.Allowed {
		t.Fatalf("未达上限应放行: %+v", result)
	}
	if result.Remaining != 1 {
		t.Fatalf("期望剩余 1 次，实际 %d", result.Remaining)
	}
}
