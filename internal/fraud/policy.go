package fraud

import "time"

// Policy 风控策略参数。
// 各项默认值来自线上观察到的行为，属于参考值而非契约。
type Policy struct {
	// 限频
	Cooldown time.Duration
	DailyCap int

	// 节奏分析
	BurstWindow         time.Duration
	BurstCount          int
	AutomationSample    int
	AutomationTolerance time.Duration

	// 账号规则
	MinAccountAgeDays int
	MinFollowerCount  int
	MinPostCount      int

	// 评分
	DuplicatePenalty     int
	RateLimitPenalty     int
	VelocityPenalty      int
	AccountFactorPenalty int
	MediumThreshold      int
	HighThreshold        int
	CriticalThreshold    int

	BlockDuration time.Duration
}

// DefaultPolicy 返回参考默认策略
func DefaultPolicy() Policy {
	return Policy{
		Cooldown: 60 * time.Minute,
		DailyCap: 3,

		BurstWindow:         10 * time.Second,
		BurstCount:          3,
		AutomationSample:    4,
		AutomationTolerance: 500 * time.Millisecond,

		MinAccountAgeDays: 30,
		MinFollowerCount:  100,
		MinPostCount:      10,

		DuplicatePenalty:     85,
		RateLimitPenalty:     50,
		VelocityPenalty:      30,
		AccountFactorPenalty: 15,
		MediumThreshold:      30,
		HighThreshold:        60,
		CriticalThreshold:    80,

		BlockDuration: time.Hour,
	}
}
