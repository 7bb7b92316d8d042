// Package pair 把各种写法的交易对符号拆成 base/quote 两段。
package pair

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidPair 表示交易对符号拆不出正好两段。
var ErrInvalidPair = errors.New("invalid market pair")

// $ 和 + 会出现在个别币种代码里（E$P、C+），保留为符号字符。
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9$+]+`)

// Split 把交易对符号拆成 (base, quote)。
// 带分隔符的写法（BTC-ETH、BTC/ETH、BTC_ETH、BTC ETH）直接按分隔符切；
// 无分隔符时（BTCUSD）借助 knownQuotes 匹配，再不行按 6/8 位平分。
func Split(symbol string, knownQuotes []string) (string, string, error) {
	p := strings.ToUpper(strings.Join(strings.Fields(symbol), " "))
	tokens := tokenPattern.FindAllString(p, -1)

	if len(tokens) > 2 {
		// VEN_OLD/BTC 这类带退市标记的符号，丢掉 OLD 段再看
		kept := tokens[:0]
		for _, tok := range tokens {
			if !strings.HasPrefix(tok, "OLD") {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	} else if len(tokens) == 1 && len(knownQuotes) > 0 {
		quotes := make([]string, len(knownQuotes))
		copy(quotes, knownQuotes)
		sort.SliceStable(quotes, func(i, j int) bool { return len(quotes[i]) < len(quotes[j]) })
		if len(p) > 6 {
			// 超过 6 位的符号改成最长优先：BTCTUSD 要配到 TUSD 而不是 USD
			for i, j := 0, len(quotes)-1; i < j; i, j = i+1, j-1 {
				quotes[i], quotes[j] = quotes[j], quotes[i]
			}
		}

		var quote, base string
		for _, q := range quotes {
			if strings.HasSuffix(p, q) {
				quote = q
				break
			}
		}
		for _, q := range quotes {
			if strings.HasPrefix(p, q) {
				base = q
				break
			}
		}

		switch {
		case quote != "": // 后缀命中优先于前缀
			tokens = []string{p[:len(p)-len(quote)], quote}
		case base != "":
			tokens = []string{base, p[len(base):]}
		case len(p) == 6:
			tokens = []string{p[:3], p[3:]}
		case len(p) == 8:
			tokens = []string{p[:4], p[4:]}
		}
	}

	if len(tokens) != 2 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPair, p)
	}
	return tokens[0], tokens[1], nil
}
