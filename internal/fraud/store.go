package fraud

import (
	"context"
	"time"
)

// HistoryStore 提交历史与封禁状态的持久化抽象。
// 读路径永不报错：键缺失或数据损坏一律返回空结果，让下游走宽松分支；
// 写路径的 I/O 错误原样上抛。
type HistoryStore interface {
	Load(ctx context.Context) []SubmissionRecord
	Append(ctx context.Context, record SubmissionRecord) error
	Clear(ctx context.Context) error
	Block(ctx context.Context) *BlockRecord
	SetBlock(ctx context.Context, record BlockRecord) error
	ClearBlock(ctx context.Context) error
}

// RemoteChecker 后端权威接口：跨设备重复检查与账号校验
type RemoteChecker interface {
	CheckDuplicate(ctx context.Context, url, postID string) (RemoteDuplicate, error)
	VerifyAccount(ctx context.Context, url string) (RemoteAccount, error)
}

// TrimExpired 按保留期裁剪历史记录，retention <= 0 时不裁剪
func TrimExpired(records []SubmissionRecord, retention time.Duration, now time.Time) []SubmissionRecord {
	if retention <= 0 {
		return records
	}
	cutoff := now.Add(-retention).UnixMilli()
	kept := make([]SubmissionRecord, 0, len(records))
	for _, record := range records {
		if record.Timestamp >= cutoff {
			kept = append(kept, record)
		}
	}
	return kept
}
