// Package rewardsapi 封装返利后端的两个权威接口：
// 跨设备重复检查与账号校验。
package rewardsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ig-reward-gate/internal/fraud"
)

// ErrMalformedResponse 后端响应缺少必要字段。
// 动态形状的响应在边界处显式校验，避免缺字段静默进入评分逻辑。
var ErrMalformedResponse = errors.New("后端响应缺少必要字段")

// Client 返利后端 API 客户端
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CheckDuplicate 调用后端判断该帖子是否已被任意用户/设备提交过
func (c *Client) CheckDuplicate(ctx context.Context, url, postID string) (fraud.RemoteDuplicate, error) {
	payload := map[string]string{
		"url":    url,
		"postId": postID,
	}

	data, err := c.post(ctx, "/v1/submissions/check-duplicate", payload)
	if err != nil {
		return fraud.RemoteDuplicate{}, err
	}

	var result struct {
		IsDuplicate          *bool  `json:"isDuplicate"`
		ExistingSubmissionID string `json:"existingSubmissionId"`
		SubmittedAt          string `json:"submittedAt"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return fraud.RemoteDuplicate{}, fmt.Errorf("解析重复检查响应失败: %w", err)
	}
	if result.IsDuplicate == nil {
		return fraud.RemoteDuplicate{}, fmt.Errorf("重复检查: %w", ErrMalformedResponse)
	}

	return fraud.RemoteDuplicate{
		IsDuplicate:          *result.IsDuplicate,
		ExistingSubmissionID: result.ExistingSubmissionID,
		SubmittedAt:          result.SubmittedAt,
	}, nil
}

// VerifyAccount 调用后端获取提交链接对应账号的核验信号
func (c *Client) VerifyAccount(ctx context.Context, url string) (fraud.RemoteAccount, error) {
	payload := map[string]string{"url": url}

	data, err := c.post(ctx, "/v1/accounts/verify", payload)
	if err != nil {
		return fraud.RemoteAccount{}, err
	}

	var result struct {
		IsVerified        *bool `json:"isVerified"`
		AccountAge        *int  `json:"accountAge"`
		FollowerCount     *int  `json:"followerCount"`
		PostCount         *int  `json:"postCount"`
		VerificationBadge bool  `json:"verificationBadge"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return fraud.RemoteAccount{}, fmt.Errorf("解析账号校验响应失败: %w", err)
	}
	if result.IsVerified == nil || result.AccountAge == nil || result.FollowerCount == nil || result.PostCount == nil {
		return fraud.RemoteAccount{}, fmt.Errorf("账号校验: %w", ErrMalformedResponse)
	}

	return fraud.RemoteAccount{
		IsVerified:        *result.IsVerified,
		AccountAgeDays:    *result.AccountAge,
		FollowerCount:     *result.FollowerCount,
		PostCount:         *result.PostCount,
		VerificationBadge: result.VerificationBadge,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("编码请求失败: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", "IG-Reward-Gate")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("调用后端失败: %w", err)
	}
	defer response.Body.Close()

	data, _ := io.ReadAll(response.Body)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("后端返回异常: HTTP %d, body=%s", response.StatusCode, string(data))
	}

	return data, nil
}
