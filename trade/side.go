package trade

import (
	"errors"
	"fmt"
	"regexp"
)

// Side 表示交易方向。
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ErrUnknownSide 表示方向文本不在买/卖同义词表里。
var ErrUnknownSide = errors.New("unknown side value")

var (
	buyPattern  = regexp.MustCompile(`(?i)buy|bought|bid`)
	sellPattern = regexp.MustCompile(`(?i)sell|sold|ask`)
)

// ParseSide 从自由文本解析交易方向。认不出来就是错误，绝不默认成某一边。
func ParseSide(text string) (Side, error) {
	switch {
	case buyPattern.MatchString(text):
		return SideBuy, nil
	case sellPattern.MatchString(text):
		return SideSell, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownSide, text)
	}
}
