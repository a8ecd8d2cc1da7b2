package api

import (
	"net/url"
	"strings"
)

// CheckRequest 风控检查请求体
type CheckRequest struct {
	URL                     string `json:"url"`
	SkipAccountVerification bool   `json:"skip_account_verification"`
}

func (r *CheckRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
}

func (r *CheckRequest) Validate() error {
	return validateSubmissionURL(r.URL)
}

// SubmitRequest 提交记录/单项检查请求体
type SubmitRequest struct {
	URL string `json:"url"`
}

func (r *SubmitRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
}

func (r *SubmitRequest) Validate() error {
	return validateSubmissionURL(r.URL)
}

// validateSubmissionURL 只做传输层的形式校验；
// 链接能否提取帖子标识由引擎按正常分支处理，不在这里拦截
func validateSubmissionURL(raw string) error {
	if raw == "" {
		return errBadRequest("url 不能为空")
	}
	if len(raw) > 2048 {
		return errBadRequest("url 过长")
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errBadRequest("url 必须是合法的 http(s) 链接")
	}
	return nil
}

type apiError struct {
	Message string
	Code    int
}

func (e apiError) Error() string {
	return e.Message
}

func errBadRequest(message string) error {
	return apiError{Message: message, Code: 400}
}
