package utils

import (
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"no tags here", nil},
		{"check out my #InkTober piece", []string{"inktober"}},
		{"#art #ART #Art dedup", []string{"art"}},
		{"mixed #水彩 and #sketch_wip today", []string{"水彩", "sketch_wip"}},
		{"#123 numeric and #tag,punctuation", []string{"123", "tag"}},
		{"edge#case without space", []string{"case"}},
	}

	for _, tt := range tests {
		got := ExtractHashtags(tt.content)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractHashtags(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestJoinSplitIDs(t *testing.T) {
	if got := JoinIDs(nil); got != "" {
		t.Errorf("JoinIDs(nil) = %q, want empty", got)
	}
	if got := JoinIDs([]uint{1, 42, 7}); got != "1,42,7" {
		t.Errorf("JoinIDs = %q, want 1,42,7", got)
	}

	if got := SplitIDs(""); got != nil {
		t.Errorf("SplitIDs(\"\") = %v, want nil", got)
	}
	if got := SplitIDs("1,42,7"); !reflect.DeepEqual(got, []uint{1, 42, 7}) {
		t.Errorf("SplitIDs = %v, want [1 42 7]", got)
	}
	// 非法片段跳过，不中断解析
	if got := SplitIDs("1,abc,3"); !reflect.DeepEqual(got, []uint{1, 3}) {
		t.Errorf("SplitIDs with bad segment = %v, want [1 3]", got)
	}
}
