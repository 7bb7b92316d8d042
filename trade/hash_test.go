package trade

import "testing"

func TestNormalizeHash(t *testing.T) {
	cases := []struct {
		in   string
		out  string
		ok   bool
	}{
		{"0xABCDEF1234", "abcdef1234", true},
		{"0XABCDEF1234", "abcdef1234", true},
		{"abcdef1234", "abcdef1234", true},
		{"  0xAA  ", "aa", true},
		{"", "", false},
		{"0", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeHash(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("NormalizeHash(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.out, tc.ok)
		}
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString(`  ""hello   world""  `); got != "hello world" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestPrintableString(t *testing.T) {
	if got := PrintableString("Crème\tBrûlée", false); got != "Crme Brle" {
		t.Fatalf("unexpected %q", got)
	}
	if got := PrintableString("ABC def", true); got != "abc def" {
		t.Fatalf("unexpected %q", got)
	}
}
