package auto

import "testing"

func TestMatchTextModes(t *testing.T) {
	cases := []struct {
		name          string
		query         string
		candidate     string
		mode          MatchMode
		caseSensitive bool
		want          bool
	}{
		{"包含-命中", "确定", "点击确定按钮", MatchContains, false, true},
		{"包含-未命中", "取消", "点击确定按钮", MatchContains, false, false},
		{"包含-忽略大小写", "ok", "Click OK", MatchContains, false, true},
		{"包含-区分大小写", "ok", "Click OK", MatchContains, true, false},
		{"空模式按包含处理", "OK", "OK button", "", false, true},
		{"相等-命中", "OK", "OK", MatchEquals, false, true},
		{"相等-部分不算", "OK", "OK button", MatchEquals, false, false},
		{"相等-忽略大小写", "ok", "OK", MatchEquals, false, true},
		{"相等-区分大小写", "ok", "OK", MatchEquals, true, false},
		{"前缀-命中", "用户", "用户名", MatchStartsWith, false, true},
		{"前缀-未命中", "名", "用户名", MatchStartsWith, false, false},
		{"正则-命中", `^\d+\.\d+$`, "3.14", MatchRegex, false, true},
		{"正则-未命中", `^\d+$`, "abc", MatchRegex, false, false},
		{"正则-忽略大小写", "^save", "Save File", MatchRegex, false, true},
		{"正则-区分大小写", "^save", "Save File", MatchRegex, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := matchText(c.query, c.candidate, c.mode, c.caseSensitive)
			if err != nil {
				t.Fatalf("不应报错: %v", err)
			}
			if got != c.want {
				t.Errorf("matchText(%q, %q, %s, %v) = %v, 期望 %v",
					c.query, c.candidate, c.mode, c.caseSensitive, got, c.want)
			}
		})
	}
}

func TestMatchTextInvalidRegex(t *testing.T) {
	_, err := matchText("[invalid", "text", MatchRegex, false)
	if err == nil {
		t.Error("无效正则应报错")
	}
}

func TestMatchTextUnknownMode(t *testing.T) {
	_, err := matchText("a", "a", MatchMode("fuzzy"), false)
	if err == nil {
		t.Error("未知匹配模式应报错")
	}
}

func TestParseMatchMode(t *testing.T) {
	for _, s := range []string{"contains", "equals", "starts-with", "regex"} {
		mode, err := ParseMatchMode(s)
		if err != nil {
			t.Errorf("ParseMatchMode(%q) 报错: %v", s, err)
		}
		if string(mode) != s {
			t.Errorf("ParseMatchMode(%q) = %s", s, mode)
		}
	}

	if _, err := ParseMatchMode("glob"); err == nil {
		t.Error("未知模式应报错")
	}
}
