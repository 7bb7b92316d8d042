// Package dateparse 处理交易导出里格式混乱的日期：从样本批推断固定布局，
// 或把单个原始值（epoch 数字 / 日历字符串）归一成 UTC 时刻。
package dateparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// 推断/解析失败的错误种类，导入方用 errors.Is 区分处理。
var (
	// ErrDateGrid 表示过滤后拼不出 3 列日期分量。
	ErrDateGrid = errors.New("date grid malformed")
	// ErrDateAmbiguous 表示年/月/日的列角色无法唯一确定。
	ErrDateAmbiguous = errors.New("date format ambiguous")
	// ErrBadDateToken 表示命中了表格导出产生的坏日期形态。
	ErrBadDateToken = errors.New("malformed date token")
)

// badDatePattern 匹配 Excel 格式化事故产生的 MM:SS.f 字符串，例如 42:01.6。
var badDatePattern = regexp.MustCompile(`^\d{2}:\d{2}\.\d$`)

// meridiemPattern 匹配紧贴数字或小写的结尾 AM/PM（bitmex 的 "11:25PM"）。
var meridiemPattern = regexp.MustCompile(`(?i)\d ?[AP]M$`)

// FormatSpec 描述一个数据源日期列的固定布局。
// 对同一来源的一批样本推断一次，之后每一行复用；单行样本往往有歧义，
// 不要按行推断。缓存由调用方按 来源+列 负责。
type FormatSpec struct {
	DateLayout string // 日期部分的 Go 参考布局，例如 "01/02/2006"
	TimeLayout string // 时间部分，可能为空，例如 "3:04 PM"
	Separator  string // 日期分量之间的分隔符：- / .
	ShortYear  bool   // 两位年份模式（"19" 代表 2019）
}

// Layout 返回可直接交给 time.Parse 的完整布局。
func (s *FormatSpec) Layout() string {
	return strings.TrimSpace(s.DateLayout + " " + s.TimeLayout)
}

// ConvertWithFormat 用提前推断好的布局严格解析一个日期字符串。
// 日期和时间之间的逗号或 T 先归一成空格，和推断时的清洗保持一致。
// spec 为 nil 时退回通用解析。
func ConvertWithFormat(value string, spec *FormatSpec) (time.Time, error) {
	v := squish(value)
	// 16:20.5 这类字符串会被当成时间解析过去，必须先拦下
	if badDatePattern.MatchString(v) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrBadDateToken, v)
	}

	if spec == nil {
		t, ok := parseGeneric(v, time.UTC)
		if !ok {
			return time.Time{}, fmt.Errorf("cannot parse date: %s", v)
		}
		return t, nil
	}

	cleaned := squish(strings.NewReplacer("T", " ", ",", " ").Replace(v))
	// 布局里的 PM 前有空格且只认大写，把 "11:25PM"、"9:05am" 对齐过去
	cleaned = meridiemPattern.ReplaceAllStringFunc(cleaned, func(m string) string {
		return m[:1] + " " + strings.ToUpper(strings.TrimSpace(m[1:]))
	})
	t, err := time.Parse(spec.Layout(), cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q with layout %q: %w", cleaned, spec.Layout(), err)
	}
	return t.UTC(), nil
}

// squish 折叠空白，对齐原始数据里随机出现的多余空格。
func squish(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
