package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeTextStripsHTML(t *testing.T) {
	if got := SanitizeText("<b>inflated</b> points <script>x()</script>", 0); got != "inflated points" {
		t.Errorf("Expected HTML stripped, got %q", got)
	}
}

func TestSanitizeTextTruncatesOnRuneBoundary(t *testing.T) {
	// 多字节文本截断必须落在字符边界上，不能产出非法 UTF-8
	got := SanitizeText(strings.Repeat("垃圾分类", 60), 100)
	if !utf8.ValidString(got) {
		t.Fatalf("Truncated text is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 100 {
		t.Errorf("Expected 100 runes after truncation, got %d", n)
	}

	// ASCII 按同样的字符口径截断
	if got := SanitizeText(strings.Repeat("a", 10), 4); got != "aaaa" {
		t.Errorf("Expected aaaa, got %q", got)
	}
	// 不超限时原样保留
	if got := SanitizeText("短文本", 100); got != "短文本" {
		t.Errorf("Expected unchanged text, got %q", got)
	}
}
