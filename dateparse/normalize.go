package dateparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 自带时区偏移的布局：时区由值本身决定。
var offsetLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 Z0700",
}

// 不带偏移的日期时间布局，语义上是来源时区的墙上时间。
// 顺序重要：更具体的放前面。文本月份的形态逐一列出，不依赖进程 locale。
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"Jan 2, 2006 15:04:05",
	"Jan 2 2006 15:04:05",
	"2 January 2006 15:04:05",
}

var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"January 2, 2006",
}

var timeOnlyLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// Normalize 把一个原始日期值转成 UTC 时刻。
// 纯数字按 epoch 处理，秒/毫秒自动判别；其余走通用布局解析。
// 空输入返回 ok=false；命中坏日期形态返回 ErrBadDateToken；
// 解析不出来的绝对日期返回 ok=false 而不是报错——宁可缺一个时间戳，
// 也不要因为它废掉一整行本来有效的交易。
func Normalize(raw string, loc *time.Location) (time.Time, bool, error) {
	s := squish(raw)
	if s == "" {
		return time.Time{}, false, nil
	}
	if badDatePattern.MatchString(s) {
		return time.Time{}, false, fmt.Errorf("%w: %s", ErrBadDateToken, s)
	}
	if t, ok := parseEpoch(s); ok {
		return t, true, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, ok := parseGeneric(s, loc)
	if !ok {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// parseEpoch 判定并解析数字形态的时间戳。
// 判定方式：去掉尾部 .0 后，十进制重排印和原文一致就认为是数字
// （1577559733、1577559733511、1577559733.5118 都算）。
// 数值超过"当前时刻 + 1000 年"的秒数时按毫秒解释。
func parseEpoch(s string) (time.Time, bool) {
	stripped := strings.TrimSuffix(s, ".0")
	d, err := decimal.NewFromString(stripped)
	if err != nil || d.String() != stripped {
		return time.Time{}, false
	}
	n := d.IntPart()
	if n > time.Now().AddDate(1000, 0, 0).Unix() {
		n /= 1000
	}
	return time.Unix(n, 0).UTC(), true
}

// parseGeneric 用白名单布局解析一个绝对日期，结果统一转 UTC。
// 缺失的时间分量补零，只有时间时日期取当天。
// ParseInLocation 按具体日期套用该时区的夏令时规则，切换当天
// 也能得到正确的偏移；值里带显式偏移时以值为准。
func parseGeneric(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), true
		}
	}
	now := time.Now().In(loc)
	for _, layout := range timeOnlyLayouts {
		if clock, err := time.Parse(layout, s); err == nil {
			t := time.Date(now.Year(), now.Month(), now.Day(),
				clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
