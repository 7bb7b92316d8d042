// Package fee 从金额比值推断手续费记在哪条腿的币种上。
package fee

import "github.com/shopspring/decimal"

// 手续费占比的合理区间：0.01% ~ 5%。
var (
	ratioMin  = decimal.RequireFromString("0.0001")
	ratioMax  = decimal.RequireFromString("0.05")
	bigRatio  = decimal.RequireFromString("0.01")
	narrowMax = decimal.RequireFromString("0.005")
)

// candidate 把手续费与某条腿金额的比值绑到该腿的币种上。
type candidate struct {
	currency string
	ratio    decimal.Decimal
}

// Detect 根据手续费与两条腿金额的无符号比值推断手续费币种。
// 任一金额为零时信号不足，返回 ok=false；过滤后仍剩两个候选同样放弃，
// 由调用方按交易方向取默认币种。过滤是一条固定顺序的管道：
// 合理区间 → 大比值收窄 → 精度判别。
func Detect(fromAmount decimal.Decimal, fromCurrency string, toAmount decimal.Decimal, toCurrency string, feeAmount decimal.Decimal) (string, bool) {
	if fromAmount.IsZero() || toAmount.IsZero() || feeAmount.IsZero() {
		return "", false
	}

	candidates := []candidate{
		{fromCurrency, feeAmount.Div(fromAmount).Abs()},
		{toCurrency, feeAmount.Div(toAmount).Abs()},
	}

	candidates = filter(candidates, plausible)
	if len(candidates) > 1 && anyBig(candidates) {
		candidates = filter(candidates, small)
	}
	if len(candidates) > 1 {
		candidates = filter(candidates, clean)
	}

	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0].currency, true
}

// plausible：0.01% ≤ r ≤ 5% 才像手续费。
func plausible(c candidate) bool {
	return c.ratio.Cmp(ratioMin) >= 0 && c.ratio.Cmp(ratioMax) <= 0
}

// small：两个候选并存且有一个超过 1% 时，只有更小的那个像手续费。
func small(c candidate) bool {
	return c.ratio.Cmp(ratioMin) >= 0 && c.ratio.Cmp(narrowMax) <= 0
}

// clean：真实的百分比费率多是"干净"小数，0.002 而不是 0.00368219283。
func clean(c candidate) bool {
	return c.ratio.Round(4).Equal(c.ratio.Round(7))
}

func anyBig(cs []candidate) bool {
	for _, c := range cs {
		if c.ratio.Cmp(bigRatio) > 0 {
			return true
		}
	}
	return false
}

func filter(cs []candidate, keep func(candidate) bool) []candidate {
	out := cs[:0]
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
