// Package fraud 实现提交前的反欺诈闸门：
// 重复检测、限频、提交节奏分析、账号校验，以及把这些信号
// 汇总成放行/拦截决策并持久化封禁状态的调度器。
package fraud

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Engine 单个设备的风控引擎。历史存储与后端接口均为注入依赖，
// 便于替换为内存实现做测试，也允许多租户场景下并存多个实例。
type Engine struct {
	policy   Policy
	store    HistoryStore
	remote   RemoteChecker
	deviceID string
}

func NewEngine(policy Policy, store HistoryStore, remote RemoteChecker, deviceID string) *Engine {
	return &Engine{
		policy:   policy,
		store:    store,
		remote:   remote,
		deviceID: deviceID,
	}
}

// CheckOptions PerformCheck 的可选项
type CheckOptions struct {
	SkipAccountVerification bool
}

// PerformCheck 执行一次完整的风控检查，是外部唯一应调用的入口。
// 单趟决策，无重试：封禁短路 → 重复 → 限频 → 节奏 → 账号 → 汇总评分。
// 预期内的失败（网络、存储损坏）由各子检查自身的宽严策略消化，
// 本方法不向调用方抛出这类错误。
func (e *Engine) PerformCheck(ctx context.Context, rawURL string, opts CheckOptions) CheckResult {
	now := time.Now()

	if block := e.store.Block(ctx); block != nil && !block.Expired(now) {
		return CheckResult{
			Allowed:        false,
			RiskScore:      100,
			RiskLevel:      RiskCritical,
			BlockedReasons: []string{"Submissions are temporarily blocked: " + block.Reason},
			Warnings:       []string{},
		}
	}

	result := CheckResult{
		Allowed:        true,
		BlockedReasons: []string{},
		Warnings:       []string{},
	}
	score := 0

	// 重复提交永远是拦截项，而不只是加分项
	duplicate := e.CheckDuplicateURL(ctx, rawURL)
	if duplicate.IsDuplicate {
		score += e.policy.DuplicatePenalty
		result.Allowed = false
		result.BlockedReasons = append(result.BlockedReasons, duplicate.Reason)
	} else if duplicate.Reason != "" {
		result.Warnings = append(result.Warnings, duplicate.Reason)
	}

	rate := e.CheckRateLimit(ctx)
	if !rate.Allowed {
		score += e.policy.RateLimitPenalty
		result.Allowed = false
		result.BlockedReasons = append(result.BlockedReasons, rate.Message)
	}

	velocity := e.CheckVelocity(ctx)
	if velocity.Suspicious {
		score += e.policy.VelocityPenalty
		result.Warnings = append(result.Warnings, velocity.Reason)
	}

	if !opts.SkipAccountVerification {
		account := e.VerifyAccount(ctx, rawURL)
		for _, factor := range account.RiskFactors {
			score += e.policy.AccountFactorPenalty
			result.Warnings = append(result.Warnings, factor)
		}
	}

	if score >= e.policy.CriticalThreshold {
		result.Allowed = false
	}

	result.RiskScore = score
	result.RiskLevel = e.riskLevel(score)
	if !result.Allowed {
		// 任何拦截条件都升级为 critical
		result.RiskLevel = RiskCritical
	}

	// 重复或总分越线时写入封禁，后续检查在第一步即可短路。
	// 写入失败不影响本次已完成的判定。
	if duplicate.IsDuplicate || score >= e.policy.CriticalThreshold {
		reason := "Risk score exceeded the critical threshold"
		if len(result.BlockedReasons) > 0 {
			reason = result.BlockedReasons[0]
		}
		_ = e.store.SetBlock(ctx, BlockRecord{
			Until:  now.Add(e.policy.BlockDuration).UnixMilli(),
			Reason: reason,
		})
	}

	return result
}

// RecordSubmission 追加一条提交记录。
// 只应在下游确认接受之后由调用方触发，引擎自身从不调用，
// 避免被拒绝的尝试污染历史。
func (e *Engine) RecordSubmission(ctx context.Context, rawURL string) error {
	return e.store.Append(ctx, SubmissionRecord{
		ID:        uuid.NewString(),
		URL:       rawURL,
		PostID:    ExtractPostID(rawURL),
		Timestamp: time.Now().UnixMilli(),
		DeviceID:  e.deviceID,
	})
}

// ClearHistory 清空提交历史（测试与支持工具使用）
func (e *Engine) ClearHistory(ctx context.Context) error {
	return e.store.Clear(ctx)
}

// Stats 返回展示用的只读统计
func (e *Engine) Stats(ctx context.Context) Stats {
	records := e.store.Load(ctx)
	now := time.Now()

	stats := Stats{TotalSubmissions: len(records)}

	dayStart := now.Add(-24 * time.Hour).UnixMilli()
	weekStart := now.Add(-7 * 24 * time.Hour).UnixMilli()
	var latest int64
	for _, record := range records {
		if record.Timestamp >= dayStart {
			stats.SubmissionsToday++
		}
		if record.Timestamp >= weekStart {
			stats.SubmissionsThisWeek++
		}
		if record.Timestamp > latest {
			latest = record.Timestamp
		}
	}

	if latest > 0 {
		last := time.UnixMilli(latest)
		stats.LastSubmission = &last
	}

	if block := e.store.Block(ctx); block != nil && !block.Expired(now) {
		stats.IsBlocked = true
	}

	return stats
}

func (e *Engine) riskLevel(score int) RiskLevel {
	switch {
	case score >= e.policy.CriticalThreshold:
		return RiskCritical
	case score >= e.policy.HighThreshold:
		return RiskHigh
	case score >= e.policy.MediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

func millisToRFC3339(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}
