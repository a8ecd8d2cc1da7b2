package fraud

import "testing"

func TestExtractPostID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"帖子链接", "https://www.instagram.com/p/Cx1AbCdEfGh/", "Cx1AbCdEfGh"},
		{"Reel 链接", "https://www.instagram.com/reel/Dk2XyZ_abc-/", "Dk2XyZ_abc-"},
		{"Reels 复数形式", "https://instagram.com/reels/Ab3CdEfGhIj", "Ab3CdEfGhIj"},
		{"IGTV 链接", "https://www.instagram.com/tv/Ef4GhIjKlMn/", "Ef4GhIjKlMn"},
		{"带查询参数", "https://www.instagram.com/p/Cx1AbCdEfGh/?igsh=xyz", "Cx1AbCdEfGh"},
		{"个人主页无帖子", "https://www.instagram.com/someuser/", ""},
		{"乱码输入", "not a url at all", ""},
		{"空串", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractPostID(tc.url)
			if got != tc.want {
				t.Fatalf("期望 %q，实际 %q", tc.want, got)
			}
		})
	}
}
