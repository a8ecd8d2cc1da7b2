package fraud

import "context"

// 账号校验的失败策略：从严标记（fail-closed）。
// 无法核实的账号本身就是风险信号，与重复检查的宽松放行是刻意的不对称。

// VerifyAccount 调用后端获取账号信号，并按规则推导风险因子
func (e *Engine) VerifyAccount(ctx context.Context, rawURL string) AccountVerification {
	remote, err := e.remote.VerifyAccount(ctx, rawURL)
	if err != nil {
		return AccountVerification{
			IsVerified:  false,
			RiskFactors: []string{"Verification failed"},
		}
	}

	factors := make([]string, 0, 3)
	if remote.AccountAgeDays < e.policy.MinAccountAgeDays {
		factors = append(factors, "Account too new")
	}
	if remote.FollowerCount < e.policy.MinFollowerCount {
		factors = append(factors, "Low follower count")
	}
	if remote.PostCount < e.policy.MinPostCount {
		factors = append(factors, "Low account activity")
	}

	return AccountVerification{
		IsVerified:        remote.IsVerified,
		AccountAgeDays:    remote.AccountAgeDays,
		FollowerCount:     remote.FollowerCount,
		PostCount:         remote.PostCount,
		VerificationBadge: remote.VerificationBadge,
		RiskFactors:       factors,
	}
}
