package trade

import "strings"

// NormalizeHash 统一交易哈希写法：去 0x 前缀、转小写。
// coinbase 等来源的地址不带 0x。空串或字面 "0" 视为没有哈希。
func NormalizeHash(txhash string) (string, bool) {
	s := strings.TrimSpace(txhash)
	if s == "" || s == "0" {
		return "", false
	}
	return strings.TrimPrefix(strings.ToLower(s), "0x"), true
}
