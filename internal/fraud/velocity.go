package fraud

import (
	"context"
	"sort"
)

// CheckVelocity 分析最近提交的时间分布，识别两类异常节奏：
// 短窗口内的爆发式提交，以及间隔近乎恒定的自动化提交。
// 人工提交的间隔天然不规则，过于均匀本身即是信号。
func (e *Engine) CheckVelocity(ctx context.Context) VelocityResult {
	records := e.store.Load(ctx)
	if len(records) < 2 {
		return VelocityResult{Suspicious: false}
	}

	timestamps := make([]int64, 0, len(records))
	for _, record := range records {
		timestamps = append(timestamps, record.Timestamp)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	if e.detectBurst(timestamps) {
		return VelocityResult{
			Suspicious: true,
			Reason:     "High submission frequency detected",
		}
	}

	if e.detectAutomation(timestamps) {
		return VelocityResult{
			Suspicious: true,
			Reason:     "Automated submission pattern detected",
		}
	}

	return VelocityResult{Suspicious: false}
}

// detectBurst 滚动短窗口内出现 BurstCount 条以上提交即判定爆发
func (e *Engine) detectBurst(timestamps []int64) bool {
	if len(timestamps) < e.policy.BurstCount {
		return false
	}

	window := e.policy.BurstWindow.Milliseconds()
	for i := 0; i+e.policy.BurstCount-1 < len(timestamps); i++ {
		if timestamps[i+e.policy.BurstCount-1]-timestamps[i] <= window {
			return true
		}
	}
	return false
}

// detectAutomation 取最近 AutomationSample 条记录的相邻间隔，
// 间隔彼此偏差都落在容差内即判定为自动化脚本
func (e *Engine) detectAutomation(timestamps []int64) bool {
	sample := timestamps
	if len(sample) > e.policy.AutomationSample {
		sample = sample[len(sample)-e.policy.AutomationSample:]
	}
	if len(sample) < 3 {
		return false
	}

	deltas := make([]int64, 0, len(sample)-1)
	for i := 1; i < len(sample); i++ {
		deltas = append(deltas, sample[i]-sample[i-1])
	}

	minDelta, maxDelta := deltas[0], deltas[0]
	for _, delta := range deltas[1:] {
		if delta < minDelta {
			minDelta = delta
		}
		if delta > maxDelta {
			maxDelta = delta
		}
	}

	tolerance := e.policy.AutomationTolerance.Milliseconds()
	return maxDelta-minDelta <= tolerance
}
