package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 入库前清洗自由文本（违规原因、自定义分类标签），剥掉一切 HTML
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText 清洗并截断自由文本
// 截断按字符数算：直接切字节会把多字节字符切成半个，产出非法 UTF-8
func SanitizeText(s string, maxLen int) string {
	clean := strings.TrimSpace(strictPolicy.Sanitize(s))
	if maxLen > 0 {
		if runes := []rune(clean); len(runes) > maxLen {
			clean = string(runes[:maxLen])
		}
	}
	return clean
}
