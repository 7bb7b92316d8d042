package dateparse

import (
	"errors"
	"testing"
	"time"
)

func TestConvertWithFormat(t *testing.T) {
	spec := &FormatSpec{DateLayout: "01/02/2006", TimeLayout: "15:04:05", Separator: "/"}
	got, err := ConvertWithFormat("11/30/2019 10:25:00", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2019, 11, 30, 10, 25, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestConvertWithFormatCommaAndT(t *testing.T) {
	// 日期和时间之间的逗号或 T 先归一成空格
	spec := &FormatSpec{DateLayout: "01/02/2006", TimeLayout: "03:04 PM", Separator: "/"}
	got, err := ConvertWithFormat("11/30/2019, 11:25 PM", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2019, 11, 30, 23, 25, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestConvertWithFormatBadToken(t *testing.T) {
	spec := &FormatSpec{DateLayout: "01/02/2006", Separator: "/"}
	_, err := ConvertWithFormat("42:01.6", spec)
	if !errors.Is(err, ErrBadDateToken) {
		t.Fatalf("expected ErrBadDateToken, got %v", err)
	}
	// 没有固定布局时同样拦截
	_, err = ConvertWithFormat("42:01.6", nil)
	if !errors.Is(err, ErrBadDateToken) {
		t.Fatalf("expected ErrBadDateToken, got %v", err)
	}
}

func TestConvertWithFormatNilSpec(t *testing.T) {
	got, err := ConvertWithFormat("2019-04-03T06:28:09Z", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2019, 4, 3, 6, 28, 9, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// bitmex 导出的 AM/PM 紧贴时间不带空格，小时还可能只有一位。
// 推断出的布局必须能解析推断时用过的那批样本本身。
func TestConvertWithFormatMeridiemNoSpace(t *testing.T) {
	samples := []string{"11/30/2019, 11:25PM", "12/01/2019, 9:05AM"}
	spec, err := InferFormat(samples, true)
	if err != nil || spec == nil {
		t.Fatalf("inference failed: %+v err=%v", spec, err)
	}
	if spec.DateLayout != "01/02/2006" {
		t.Fatalf("unexpected date layout %q", spec.DateLayout)
	}

	wants := []time.Time{
		time.Date(2019, 11, 30, 23, 25, 0, 0, time.UTC),
		time.Date(2019, 12, 1, 9, 5, 0, 0, time.UTC),
	}
	for i, s := range samples {
		got, err := ConvertWithFormat(s, spec)
		if err != nil {
			t.Fatalf("parse %q failed: %v", s, err)
		}
		if !got.Equal(wants[i]) {
			t.Fatalf("%q: got %v, want %v", s, got, wants[i])
		}
	}

	// 小写带空格的变体也要能过
	got, err := ConvertWithFormat("12/01/2019 9:05 am", spec)
	if err != nil {
		t.Fatalf("parse lowercase meridiem failed: %v", err)
	}
	if !got.Equal(wants[1]) {
		t.Fatalf("lowercase meridiem: got %v, want %v", got, wants[1])
	}
}

// 推断出的布局格式化一个已知时刻，再严格解析回来，必须还原同一时刻。
func TestInferConvertRoundTrip(t *testing.T) {
	spec, err := InferFormat([]string{"10-16-2019 11:34 PM", "11-30-2019 10:25 AM"}, true)
	if err != nil || spec == nil {
		t.Fatalf("inference failed: %+v err=%v", spec, err)
	}

	want := time.Date(2019, 10, 16, 23, 34, 0, 0, time.UTC)
	raw := want.Format(spec.Layout())
	got, err := ConvertWithFormat(raw, spec)
	if err != nil {
		t.Fatalf("round trip parse failed for %q: %v", raw, err)
	}
	if !got.Equal(want) {
		t.Fatalf("round trip mismatch: %v vs %v", got, want)
	}
}

func TestInferConvertRoundTripDayFirst(t *testing.T) {
	spec, err := InferFormat([]string{"18/11/2019 14:04", "30/09/2019 08:00"}, true)
	if err != nil || spec == nil {
		t.Fatalf("inference failed: %+v err=%v", spec, err)
	}

	want := time.Date(2019, 11, 18, 14, 4, 0, 0, time.UTC)
	got, err := ConvertWithFormat(want.Format(spec.Layout()), spec)
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("round trip mismatch: %v vs %v", got, want)
	}
}
