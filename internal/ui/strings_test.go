package ui

import (
	"testing"
	"time"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   int64 // seconds
		want string
	}{
		{"negative", -5, "now"},
		{"subsecond", 0, "now"},
		{"seconds", 12, "12s"},
		{"minutes", 61, "1m"},
		{"hours_only", 2*60*60 + 10, "2h"},
		{"hours_minutes", 2*60*60 + 3*60, "2h 3m"},
		{"days", 24 * 60 * 60, "1d"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := humanizeDuration(timeSeconds(tc.in))
			if got != tc.want {
				t.Fatalf("humanizeDuration(%d) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  hello  ", 10); got != "hello" {
		t.Fatalf("truncate trims: got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("truncate limit<=3 = %q, want abc", got)
	}
	if got := truncate("Creativity is intelligence", 10); got != "Creativ..." {
		t.Fatalf("truncate = %q, want Creativ...", got)
	}
	if got := truncate("don’t waste", 6); got != "don..." {
		t.Fatalf("truncate counts runes: got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight longer = %q", got)
	}
}

func TestShortIDAndPlural(t *testing.T) {
	if got := shortID("seed-1"); got != "seed-1" {
		t.Fatalf("shortID short = %q", got)
	}
	if got := shortID("0b7c1f7e-1111-2222-3333-444444444444"); got != "0b7c1f7e" {
		t.Fatalf("shortID uuid = %q", got)
	}
	if got := plural(1, "quote"); got != "1 quote" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(0, "conflict"); got != "0 conflicts" {
		t.Fatalf("plural(0) = %q", got)
	}
}

func timeSeconds(sec int64) time.Duration {
	return time.Duration(sec) * time.Second
}
