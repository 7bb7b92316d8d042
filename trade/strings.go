package trade

import "strings"

// CleanString 折叠空白并去掉两端包裹的引号。
func CleanString(s string) string {
	return strings.Trim(strings.Join(strings.Fields(s), " "), `"`)
}

// PrintableString 只保留可打印 ASCII（32~126），清掉导出文件里混入的
// 控制字符和非 ASCII 噪音；lower 为 true 时再转小写。
func PrintableString(s string, lower bool) string {
	var b strings.Builder
	for _, r := range CleanString(s) {
		if r >= 32 && r <= 126 {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if lower {
		out = strings.ToLower(out)
	}
	return out
}
