package pair

import (
	"errors"
	"testing"
)

func TestSplitSeparators(t *testing.T) {
	cases := []struct {
		symbol string
		base   string
		quote  string
	}{
		{"BTC-ETH", "BTC", "ETH"},
		{"BTC/ETH", "BTC", "ETH"},
		{"BTC_ETH", "BTC", "ETH"},
		{"BTC ETH", "BTC", "ETH"},
		{"btc/usdt", "BTC", "USDT"},
		{"E$P_USDT", "E$P", "USDT"},
	}
	for _, tc := range cases {
		base, quote, err := Split(tc.symbol, nil)
		if err != nil {
			t.Fatalf("split(%q): %v", tc.symbol, err)
		}
		if base != tc.base || quote != tc.quote {
			t.Fatalf("split(%q) = (%s, %s), want (%s, %s)", tc.symbol, base, quote, tc.base, tc.quote)
		}
	}
}

func TestSplitDelistedMarker(t *testing.T) {
	base, quote, err := Split("VEN_OLD/BTC", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "VEN" || quote != "BTC" {
		t.Fatalf("unexpected split (%s, %s)", base, quote)
	}
}

func TestSplitKnownQuotes(t *testing.T) {
	base, quote, err := Split("BTCUSD", []string{"USD", "EUR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "BTC" || quote != "USD" {
		t.Fatalf("unexpected split (%s, %s)", base, quote)
	}

	// TUSD 和 USD 同时在表里时，BATUSD 仍要拆成 BAT/USD
	base, quote, err = Split("BATUSD", []string{"BAT", "USD", "TUSD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "BAT" || quote != "USD" {
		t.Fatalf("unexpected split (%s, %s)", base, quote)
	}

	// 超过 6 位时最长优先，BTCTUSD 的计价腿是 TUSD
	base, quote, err = Split("BTCTUSD", []string{"USD", "TUSD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "BTC" || quote != "TUSD" {
		t.Fatalf("unexpected split (%s, %s)", base, quote)
	}
}

func TestSplitEvenFallback(t *testing.T) {
	base, quote, err := Split("ETHBTC", []string{"XXX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "ETH" || quote != "BTC" {
		t.Fatalf("unexpected split (%s, %s)", base, quote)
	}

	base, quote, err = Split("ATOMUSDT", []string{"XXX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "ATOM" || quote != "USDT" {
		t.Fatalf("unexpected split (%s, %s)", base, quote)
	}
}

func TestSplitInvalid(t *testing.T) {
	_, _, err := Split("BTCETHX", nil)
	if !errors.Is(err, ErrInvalidPair) {
		t.Fatalf("expected ErrInvalidPair, got %v", err)
	}
	_, _, err = Split("ABCDEFG", []string{"USD"})
	if !errors.Is(err, ErrInvalidPair) {
		t.Fatalf("expected ErrInvalidPair, got %v", err)
	}
}
