package fraud

import "regexp"

// Instagram 帖子链接的已知形态：/p/<code>、/reel/<code>、/reels/<code>、/tv/<code>
var postIDPattern = regexp.MustCompile(`/(?:p|reel|reels|tv)/([A-Za-z0-9_-]+)`)

// ExtractPostID 从提交链接中提取帖子标识，用于重复比对。
// 无法提取时返回空串哨兵；两个空串之间永远不判定为重复。
func ExtractPostID(rawURL string) string {
	match := postIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return match[1]
}
