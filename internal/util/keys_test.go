package util

import (
	"strings"
	"testing"
)

func TestMemoKeyLiteralAndHashed(t *testing.T) {
	if got := MemoKey("memo:ns", "2009-01-19T00:00:00Z", 64); got != "memo:ns:t:2009-01-19T00:00:00Z" {
		t.Fatalf("literal key = %q", got)
	}
	long := strings.Repeat("x", 65)
	got := MemoKey("memo:ns", long, 64)
	if !strings.HasPrefix(got, "memo:ns:h:") || len(got) != len("memo:ns:h:")+64 {
		t.Fatalf("hashed key = %q", got)
	}
	if got != MemoKey("memo:ns", long, 64) {
		t.Fatalf("hashed key not deterministic")
	}
	if got == MemoKey("memo:ns", long+"y", 64) {
		t.Fatalf("distinct inputs share a hashed key")
	}
}

func TestFingerprintHidesKey(t *testing.T) {
	k := "memo:ns:t:2009-01-19T00:00:00Z"
	fp := Fingerprint(k)
	if len(fp) != 12 || strings.Contains(k, fp) {
		t.Fatalf("fingerprint = %q", fp)
	}
	if fp != Fingerprint(k) || fp == Fingerprint(k+"x") {
		t.Fatalf("fingerprint not stable per key")
	}
}
