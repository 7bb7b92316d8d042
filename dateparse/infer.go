package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	splitterPattern = regexp.MustCompile(`[-/.]`)
	numberPattern   = regexp.MustCompile(`[0-9]+`)
	secondsPattern  = regexp.MustCompile(`\d+:\d+:\d+`)
	offsetPattern   = regexp.MustCompile(`[+-]\d+:?\d*$`) // +0900、+09:00
)

// InferFormat 从同一来源、同一列的一批日期样本推断固定布局。
//
// 样本里哪一列是月、哪一列是日（MM/DD/YY vs DD/MM/YY）单看一行分不出来，
// 要看整批的取值范围。monthFirst 表示对斜杠分隔的歧义日期优先按美式
// 月在前解读；来源明确用日在前惯例时传 false。
//
// 返回 nil 表示样本本身已无歧义，直接走通用解析即可。
// 典型样本：
//
//	10-16-2019 11:34 PM
//	11/30/2019 10:25:00
//	18/11/2019 14:04
//	30/09/2019
func InferFormat(samples []string, monthFirst bool) (*FormatSpec, error) {
	if len(samples) == 0 {
		return nil, nil
	}

	// 快速通道：每个样本都是完整、无歧义的日历日期（ISO、文本月份），
	// 年份合理且不在未来。完整的 ISO 日期绝不能被斜杠启发式改写。
	allGood := true
	horizon := time.Now().AddDate(1, 0, 0)
	for _, s := range samples {
		t, ok := parseGeneric(squish(s), time.UTC)
		if !ok || t.Year() < 2010 || t.After(horizon) {
			allGood = false
			break
		}
	}
	if allGood && (!strings.Contains(samples[0], "/") || !monthFirst) {
		return nil, nil
	}

	// 清洗：逗号换成空格（bitmex 的 "11/30/2019, 11:25PM"），折叠空白，
	// 再丢掉明显不是日期的样本。
	cleaned := make([]string, 0, len(samples))
	for _, s := range samples {
		v := squish(strings.ReplaceAll(s, ",", " "))
		if v == "" || !strings.ContainsAny(v, "0123456789") || !splitterPattern.MatchString(v) {
			continue
		}
		if largestNumber(v) > 10000 || badDatePattern.MatchString(v) {
			continue
		}
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return nil, nil
	}

	first := cleaned[0]
	timeLayout := buildTimeLayout(strings.Join(strings.Fields(first)[1:], " "))

	// [XX-YY-ZZZZ hh:mm, AA-BB-CCCC hh:mm] 转置成 [[XX AA] [YY BB] [ZZZZ CCCC]]
	grid, ok := buildGrid(cleaned)
	if !ok || len(grid) <= 2 {
		return nil, fmt.Errorf("%w: %s", ErrDateGrid, first)
	}

	// 年份只可能在首列或末列。
	shortYearMax := 0 // 两位年份模式的上界；0 表示未启用
	var yearCols []int
	if allBetween(grid[0], 2010, 1<<31) {
		yearCols = append(yearCols, 0)
	}
	if allBetween(grid[2], 2010, 1<<31) {
		yearCols = append(yearCols, 2)
	}
	if len(yearCols) == 0 {
		// 两位年份很常见（"19" 代表 2019），不能和日混淆：要求每个值
		// 大于 12 且不超过当前年份的后两位。2100 年后这个上界的含义
		// 会变，属于已知限制。
		shortYearMax = time.Now().Year() % 100
		if allBetween(grid[0], 13, shortYearMax) {
			yearCols = append(yearCols, 0)
		}
		if allBetween(grid[2], 13, shortYearMax) {
			yearCols = append(yearCols, 2)
		}
	}

	// 月份只可能在第一或第二列。
	var monthCols []int
	if allBetween(grid[0], 1, 12) {
		monthCols = append(monthCols, 0)
	}
	if allBetween(grid[1], 1, 12) {
		monthCols = append(monthCols, 1)
	}

	// 日可以在任何列：先找一个带明确"日信号"的列（出现过大于月份
	// 上限、不超过 31 的值），再去解决更难的年/月撞位。
	dayMin := 13
	if shortYearMax > 0 {
		dayMin = shortYearMax + 1
	}
	dayCol := -1
	for i, col := range grid {
		if anyBetween(col, dayMin, 31) {
			dayCol = i
			break
		}
	}

	// 同一列不能同时扮演两个角色。
	if dayCol >= 0 {
		yearCols = removeCol(yearCols, dayCol)
		monthCols = removeCol(monthCols, dayCol)
	}

	yearCol, monthCol := -1, -1
	if len(yearCols) == 1 {
		yearCol = yearCols[0]
	}
	if len(monthCols) == 1 {
		monthCol = monthCols[0]
	}

	sep := detectSeparator(strings.Fields(first)[0])

	// 年和月不会同时撞位，只有 日/年 或 日/月 可能撞。
	// 例：19/12/19 年份撞位（首尾都像年），12/12/13 月份撞位。
	if len(yearCols) > 1 {
		yearCol = 2
	} else if len(monthCols) > 1 {
		if sep == "/" {
			// 斜杠分隔常见于美式 m/d/y，其他地区多用 - 或 .
			if monthFirst {
				monthCol = 0
			} else {
				monthCol = 1
			}
		} else {
			monthCol = 1
		}
	}

	if yearCol < 0 || monthCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrDateAmbiguous, first)
	}

	// 位置定型：年在首列只能是 y/m/d，月在首列只能是 m/d/y，
	// 否则日就是剩下的那一列。
	switch {
	case yearCol == 0:
		monthCol, dayCol = 1, 2
	case monthCol == 0:
		dayCol, yearCol = 1, 2
	default:
		for i := 0; i < 3; i++ {
			if i != monthCol && i != yearCol {
				dayCol = i
			}
		}
	}

	tokens := map[int]string{dayCol: "02", monthCol: "01"}
	if shortYearMax > 0 {
		tokens[yearCol] = "06"
	} else {
		tokens[yearCol] = "2006"
	}

	return &FormatSpec{
		DateLayout: tokens[0] + sep + tokens[1] + sep + tokens[2],
		TimeLayout: timeLayout,
		Separator:  sep,
		ShortYear:  shortYearMax > 0,
	}, nil
}

// buildTimeLayout 从首个样本的时间段推出时间布局。
func buildTimeLayout(timePart string) string {
	if !strings.Contains(timePart, ":") {
		return ""
	}
	meridiem := strings.Contains(timePart, "AM") || strings.Contains(timePart, "PM")
	layout := "15:04"
	if meridiem {
		// 不补零的小时位，"9:05 AM" 和 "11:25 AM" 都能对上
		layout = "3:04"
	}
	if secondsPattern.MatchString(timePart) {
		layout += ":05"
	}
	if m := offsetPattern.FindString(timePart); m != "" {
		if strings.Contains(m, ":") {
			layout += " -07:00"
		} else {
			layout += " -0700"
		}
	}
	if meridiem {
		layout += " PM"
	}
	return layout
}

// buildGrid 把每个样本的日期段按分隔符切开取数值，再按列转置。
// 各样本的分量数不一致时放弃。
func buildGrid(cleaned []string) ([][]int, bool) {
	var grid [][]int
	for i, s := range cleaned {
		comps := splitterPattern.Split(strings.Fields(s)[0], -1)
		if i == 0 {
			grid = make([][]int, len(comps))
		} else if len(comps) != len(grid) {
			return nil, false
		}
		for j, c := range comps {
			grid[j] = append(grid[j], leadingInt(c))
		}
	}
	return grid, true
}

// leadingInt 取字符串开头的十进制数，没有则为 0，对齐宽松数值化。
// "03T06" 这种 ISO 残段取到 3。
func leadingInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// largestNumber 返回字符串里最大的嵌入数字；任何日期分量都不会超过
// 10000，超过的样本（纳秒段、epoch）不适合进网格。
func largestNumber(s string) int {
	max := 0
	for _, m := range numberPattern.FindAllString(s, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			// 溢出 int 的数字串只会更大
			return 1 << 31
		}
		if n > max {
			max = n
		}
	}
	return max
}

func detectSeparator(datePart string) string {
	for _, sep := range []string{"-", "/", "."} {
		if strings.Contains(datePart, sep) {
			return sep
		}
	}
	return "-"
}

func allBetween(col []int, lo, hi int) bool {
	for _, v := range col {
		if v < lo || v > hi {
			return false
		}
	}
	return len(col) > 0
}

func anyBetween(col []int, lo, hi int) bool {
	for _, v := range col {
		if v >= lo && v <= hi {
			return true
		}
	}
	return false
}

func removeCol(cols []int, col int) []int {
	out := cols[:0]
	for _, c := range cols {
		if c != col {
			out = append(out, c)
		}
	}
	return out
}
