package fraud

import "context"

// 重复检查的失败策略：宽松放行（fail-open）。
// 后端才是最终权威，本地无法确认时优先保证可用性。

// CheckDuplicateURL 先查本地历史，再调后端权威接口判断是否重复提交。
// 本地命中时直接返回，不发起网络请求。
func (e *Engine) CheckDuplicateURL(ctx context.Context, rawURL string) DuplicateResult {
	postID := ExtractPostID(rawURL)
	if postID == "" {
		return DuplicateResult{
			IsDuplicate: false,
			Reason:      "Could not extract a post id from the URL; duplicate check skipped",
		}
	}

	for _, record := range e.store.Load(ctx) {
		if record.PostID != "" && record.PostID == postID {
			return DuplicateResult{
				IsDuplicate:          true,
				Reason:               "This post was already submitted from this device",
				ExistingSubmissionID: record.ID,
				SubmittedAt:          millisToRFC3339(record.Timestamp),
			}
		}
	}

	remote, err := e.remote.CheckDuplicate(ctx, rawURL, postID)
	if err != nil {
		return DuplicateResult{
			IsDuplicate: false,
			Reason:      "Duplicate check could not be completed; the backend will re-verify",
		}
	}

	if remote.IsDuplicate {
		return DuplicateResult{
			IsDuplicate:          true,
			Reason:               "This post was already submitted",
			ExistingSubmissionID: remote.ExistingSubmissionID,
			SubmittedAt:          remote.SubmittedAt,
		}
	}

	return DuplicateResult{IsDuplicate: false}
}
