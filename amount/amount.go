// Package amount 负责原始金额字符串的解析与归一化。
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Options 控制金额归一化行为。
type Options struct {
	Decimals      int  // 链上整数金额的精度，按 10^Decimals 缩放
	HasDecimals   bool // Decimals 是否生效
	NoZero        bool // 结果为零时替换为最小额，避免下游除零
	SmallDecimals bool // 18 位小数模式（默认保留 10 位）
}

// 零替换用的最小额。
var (
	epsilon      = decimal.New(1, -8)  // 0.00000001
	smallEpsilon = decimal.New(1, -18) // 1e-18
)

// Parse 宽松解析一个金额字符串：去掉包裹引号、千分位逗号和多余空白。
// 空输入返回 ok=false，表示"没有金额"，不是错误。
func Parse(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Normalize 把原始金额转成规整的十进制数。
// 粉尘量级的真实金额在 NoZero 模式下不会被抹成零。
func Normalize(raw string, opts Options) (decimal.Decimal, bool) {
	d, ok := Parse(raw)
	if !ok {
		return decimal.Decimal{}, false
	}

	if opts.HasDecimals {
		n := opts.Decimals
		if n < 0 {
			n = 0
		}
		if n > 100 {
			n = 100
		}
		d = d.Shift(int32(-n))
	}

	places := int32(10)
	if opts.SmallDecimals {
		places = 18
	}
	d = d.Round(places)

	if opts.NoZero && d.IsZero() {
		if opts.SmallDecimals {
			return smallEpsilon, true
		}
		return epsilon, true
	}
	return d, true
}
