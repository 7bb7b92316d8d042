package dateparse

import (
	"errors"
	"testing"
)

func TestInferFormatUnambiguousISO(t *testing.T) {
	spec, err := InferFormat([]string{"2019-04-03T06:28:09Z", "2020-01-02T00:00:00Z"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec != nil {
		t.Fatalf("ISO samples need no fixed format, got %+v", spec)
	}
}

func TestInferFormatSlashStillInferred(t *testing.T) {
	// 斜杠分隔的完整日期在美式解读下不能走快速通道
	spec, err := InferFormat([]string{"2019/04/03", "2019/05/06"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec == nil {
		t.Fatalf("expected inference for slash-separated samples")
	}
	if spec.DateLayout != "2006/01/02" {
		t.Fatalf("unexpected layout %q", spec.DateLayout)
	}
}

func TestInferFormatMonthDayYearMeridiem(t *testing.T) {
	spec, err := InferFormat([]string{"10-16-2019 11:34 PM", "11-30-2019 10:25 AM"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec == nil {
		t.Fatalf("expected a format spec")
	}
	if spec.DateLayout != "01-02-2006" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}
	if spec.TimeLayout != "3:04 PM" {
		t.Fatalf("unexpected time layout %q", spec.TimeLayout)
	}
	if spec.ShortYear {
		t.Fatalf("4-digit year misdetected as short year")
	}
}

func TestInferFormatDayFirst(t *testing.T) {
	spec, err := InferFormat([]string{"18/11/2019 14:04", "30/09/2019 08:00"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.DateLayout != "02/01/2006" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}
	if spec.TimeLayout != "15:04" {
		t.Fatalf("unexpected time layout %q", spec.TimeLayout)
	}
}

func TestInferFormatSecondsAndOffset(t *testing.T) {
	spec, err := InferFormat([]string{"03/12/2019 13:13:15 +0900", "03/13/2019 09:01:02 +0900"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.TimeLayout != "15:04:05 -0700" {
		t.Fatalf("unexpected time layout %q", spec.TimeLayout)
	}
	if spec.DateLayout != "01/02/2006" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}
}

func TestInferFormatShortYear(t *testing.T) {
	spec, err := InferFormat([]string{"10-12-14", "11-25-14"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spec.ShortYear {
		t.Fatalf("expected short year mode")
	}
	if spec.DateLayout != "01-02-06" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}
}

func TestInferFormatYearClash(t *testing.T) {
	// 19/12/19：首尾都像两位年份，年份取末列，布局定为 d/m/y
	spec, err := InferFormat([]string{"19/12/19"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.DateLayout != "02/01/06" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}
}

func TestInferFormatMonthClash(t *testing.T) {
	// 12/12/13：月份可能在第一或第二列，斜杠 + 美式解读取第一列
	spec, err := InferFormat([]string{"12/12/13"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.DateLayout != "01/02/06" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}

	// 同样的样本按日在前惯例解读，月份在第二列
	spec, err = InferFormat([]string{"12/12/13"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.DateLayout != "02/01/06" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}
}

func TestInferFormatYearFirst(t *testing.T) {
	spec, err := InferFormat([]string{"14-12-10", "15-11-25"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.DateLayout != "06-01-02" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}
}

func TestInferFormatBadSamplesFilteredOut(t *testing.T) {
	// 表格导出事故产生的 MM:SS.f 形态被过滤掉，不会崩也不会报错
	spec, err := InferFormat([]string{"42:01.6"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec != nil {
		t.Fatalf("expected no format for artifact-only samples, got %+v", spec)
	}

	// epoch 毫秒这类超大数字同样进不了网格
	spec, err = InferFormat([]string{"1577559733.5118"}, true)
	if err != nil || spec != nil {
		t.Fatalf("expected nil spec, got %+v err=%v", spec, err)
	}
}

func TestInferFormatGridMalformed(t *testing.T) {
	_, err := InferFormat([]string{"10-16", "11-30"}, true)
	if !errors.Is(err, ErrDateGrid) {
		t.Fatalf("expected ErrDateGrid, got %v", err)
	}
}

func TestInferFormatAmbiguous(t *testing.T) {
	// 没有任何列像年份
	_, err := InferFormat([]string{"01-02-03"}, true)
	if !errors.Is(err, ErrDateAmbiguous) {
		t.Fatalf("expected ErrDateAmbiguous, got %v", err)
	}
}
