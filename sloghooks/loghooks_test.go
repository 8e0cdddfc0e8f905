package sloghooks

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/datecodec"
)

func newBuf() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	return &buf, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRejectSampling(t *testing.T) {
	buf, l := newBuf()
	dc := datecodec.MustNew(datecodec.Options{Hooks: New(l, Options{RejectEvery: 3})})

	for i := 0; i < 6; i++ {
		_, _ = dc.Deserialize(false)
	}
	if n := strings.Count(buf.String(), "datecodec.decode_rejected"); n != 2 {
		t.Fatalf("expected 2 sampled lines, got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "reason=unsupported_type") {
		t.Fatalf("missing reason: %s", buf.String())
	}
}

func TestKeysAreRedacted(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{})
	h.MemoSelfHeal("memo:ns:t:2009-01-19", "corrupt")
	if strings.Contains(buf.String(), "2009-01-19") {
		t.Fatalf("key leaked: %s", buf.String())
	}

	buf.Reset()
	h = New(l, Options{Redact: func(string) string { return "R" }})
	h.MemoSetRejected("memo:ns:t:x")
	if !strings.Contains(buf.String(), "key=R") {
		t.Fatalf("custom redactor not used: %s", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.DecodeRejected("string", datecodec.ReasonEmpty)
	h.LayoutFallback("2006-01-02")
	h.EpochCoerced("int")
	h.MemoSelfHeal("k", "corrupt")
	h.MemoSetRejected("k")
}
