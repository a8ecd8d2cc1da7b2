package fraud

import (
	"context"
	"fmt"
	"math"
	"time"
)

// 限频的失败策略：宽松放行（fail-open）。
// 历史损坏时 Load 返回空列表，等价于全新用户。

// CheckRateLimit 基于历史时间戳执行两条限频规则：
// 相邻提交的最小冷却时间，以及滚动 24 小时内的提交上限。
func (e *Engine) CheckRateLimit(ctx context.Context) RateLimitResult {
	records := e.store.Load(ctx)
	if len(records) == 0 {
		return RateLimitResult{Allowed: true, Remaining: e.policy.DailyCap}
	}

	now := time.Now()

	// 时间戳不可信，不假设有序，取最大值
	var latest int64
	for _, record := range records {
		if record.Timestamp > latest {
			latest = record.Timestamp
		}
	}

	elapsed := now.Sub(time.UnixMilli(latest))
	if elapsed < e.policy.Cooldown {
		wait := e.policy.Cooldown - elapsed
		minutes := int(math.Ceil(wait.Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		return RateLimitResult{
			Allowed: false,
			Message: fmt.Sprintf("Please wait %d minutes before submitting again", minutes),
		}
	}

	windowStart := now.Add(-24 * time.Hour).UnixMilli()
	count := 0
	for _, record := range records {
		if record.Timestamp >= windowStart {
			count++
		}
	}

	if count >= e.policy.DailyCap {
		return RateLimitResult{
			Allowed: false,
			Message: "Daily limit reached, please try again tomorrow",
		}
	}

	return RateLimitResult{Allowed: true, Remaining: e.policy.DailyCap - count}
}
