package fraud

import "time"

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// SubmissionRecord 一条已被下游接受的提交记录。
// 写入后不可变，仅按保留期裁剪或被显式清空。
type SubmissionRecord struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	PostID    string `json:"post_id"`
	Timestamp int64  `json:"timestamp"` // epoch 毫秒
	DeviceID  string `json:"device_id"`
}

// BlockRecord 临时封禁状态，until 过期后视为不存在（惰性过期）
type BlockRecord struct {
	Until  int64  `json:"until"` // epoch 毫秒
	Reason string `json:"reason"`
}

// Expired 判断封禁是否已过期
func (b BlockRecord) Expired(now time.Time) bool {
	return b.Until <= now.UnixMilli()
}

// CheckResult 一次完整风控检查的结果，仅在内存中存在
type CheckResult struct {
	Allowed        bool      `json:"allowed"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	BlockedReasons []string  `json:"blocked_reasons"`
	Warnings       []string  `json:"warnings"`
}

// DuplicateResult 重复提交检查结果
type DuplicateResult struct {
	IsDuplicate          bool   `json:"is_duplicate"`
	Reason               string `json:"reason,omitempty"`
	ExistingSubmissionID string `json:"existing_submission_id,omitempty"`
	SubmittedAt          string `json:"submitted_at,omitempty"`
}

// RateLimitResult 限频检查结果
type RateLimitResult struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining_submissions"`
	Message   string `json:"message,omitempty"`
}

// VelocityResult 提交节奏检查结果
type VelocityResult struct {
	Suspicious bool   `json:"suspicious"`
	Reason     string `json:"reason,omitempty"`
}

// AccountVerification 账号校验结果，每次检查实时获取、不做缓存
type AccountVerification struct {
	IsVerified        bool     `json:"is_verified"`
	AccountAgeDays    int      `json:"account_age_days"`
	FollowerCount     int      `json:"follower_count"`
	PostCount         int      `json:"post_count"`
	VerificationBadge bool     `json:"verification_badge"`
	RiskFactors       []string `json:"risk_factors"`
}

// Stats 基于历史与封禁状态的只读统计视图
type Stats struct {
	TotalSubmissions    int        `json:"total_submissions"`
	SubmissionsToday    int        `json:"submissions_today"`
	SubmissionsThisWeek int        `json:"submissions_this_week"`
	IsBlocked           bool       `json:"is_blocked"`
	LastSubmission      *time.Time `json:"last_submission,omitempty"`
}

// RemoteDuplicate 后端权威重复检查的响应
type RemoteDuplicate struct {
	IsDuplicate          bool
	ExistingSubmissionID string
	SubmittedAt          string
}

// RemoteAccount 后端账号校验的响应
type RemoteAccount struct {
	IsVerified        bool
	AccountAgeDays    int
	FollowerCount     int
	PostCount         int
	VerificationBadge bool
}
