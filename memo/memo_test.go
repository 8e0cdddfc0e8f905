package memo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/unkn0wn-root/datecodec"
	"github.com/unkn0wn-root/datecodec/internal/wire"
	pr "github.com/unkn0wn-root/datecodec/provider"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type memProvider struct {
	mu     sync.Mutex
	m      map[string]memEntry
	gets   int
	sets   int
	reject bool  // Set returns ok=false
	getErr error // Get fails
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gets++
	if p.getErr != nil {
		return nil, false, p.getErr
	}
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reject {
		return false, nil
	}
	p.sets++
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.m[key] = memEntry{v: value, exp: exp}
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, key)
	return nil
}
func (p *memProvider) Close(_ context.Context) error { return nil }

func (p *memProvider) has(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.m[key]
	return ok
}

type recHooks struct {
	datecodec.NopHooks
	mu       sync.Mutex
	healed   []string
	rejected []string
	refused  []string
}

func (h *recHooks) MemoSelfHeal(k, r string) {
	h.mu.Lock()
	h.healed = append(h.healed, r)
	h.mu.Unlock()
}
func (h *recHooks) DecodeRejected(_ string, r datecodec.Reason) {
	h.mu.Lock()
	h.rejected = append(h.rejected, string(r))
	h.mu.Unlock()
}
func (h *recHooks) MemoSetRejected(k string) {
	h.mu.Lock()
	h.refused = append(h.refused, k)
	h.mu.Unlock()
}

func newTestMemo(t *testing.T, mp pr.Provider, optsOpt func(*Options)) *Memo {
	t.Helper()
	opts := Options{Namespace: "test", Provider: mp}
	if optsOpt != nil {
		optsOpt(&opts)
	}
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

var ref = time.Date(2009, time.January, 19, 0, 0, 0, 0, time.UTC)

func TestNewRequiresProviderAndNamespace(t *testing.T) {
	if _, err := New(Options{Namespace: "x"}); err == nil {
		t.Fatalf("expected error without provider")
	}
	if _, err := New(Options{Provider: newMemProvider()}); err == nil {
		t.Fatalf("expected error without namespace")
	}
}

func TestMemoStoresAndServesInstant(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	m := newTestMemo(t, mp, nil)

	s := m.Serialize(ref)
	got, err := m.Deserialize(ctx, s)
	if err != nil || !got.Equal(ref) {
		t.Fatalf("first decode: got %v err %v", got, err)
	}
	if mp.sets != 1 {
		t.Fatalf("expected 1 set, got %d", mp.sets)
	}

	// second call is served from the provider: no new Set
	got, err = m.Deserialize(ctx, "  "+s+"\n")
	if err != nil || !got.Equal(ref) {
		t.Fatalf("memo hit: got %v err %v", got, err)
	}
	if mp.sets != 1 {
		t.Fatalf("expected memo hit without set, got %d sets", mp.sets)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC result, got %v", got.Location())
	}
}

func TestMemoAppliesCodecLocationOnHit(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	east := time.FixedZone("E", 2*3600)
	m := newTestMemo(t, mp, func(o *Options) {
		o.Codec = datecodec.MustNew(datecodec.Options{Location: east})
	})
	for i := 0; i < 2; i++ {
		got, err := m.Deserialize(ctx, "2009-01-19T00:00:00Z")
		if err != nil {
			t.Fatal(err)
		}
		if got.Location() != east || !got.Equal(ref) {
			t.Fatalf("call %d: got %v", i, got)
		}
	}
}

func TestMemoNegativeCaching(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	h := &recHooks{}
	m := newTestMemo(t, mp, func(o *Options) { o.Hooks = h })

	for i := 0; i < 2; i++ {
		got, err := m.Deserialize(ctx, "not a date")
		if !errors.Is(err, datecodec.ErrMalformed) {
			t.Fatalf("call %d: expected ErrMalformed, got %v", i, err)
		}
		if !got.IsZero() {
			t.Fatalf("call %d: rejected input returned %v", i, got)
		}
		var de *datecodec.DecodeError
		if !errors.As(err, &de) || de.Input != "not a date" || de.Type != "string" {
			t.Fatalf("call %d: unexpected error shape %#v", i, err)
		}
	}
	if mp.sets != 1 {
		t.Fatalf("expected one stored rejection, got %d sets", mp.sets)
	}
	// misses report through the codec's hooks, hits through the memo's
	if len(h.rejected) != 1 || h.rejected[0] != "malformed" {
		t.Fatalf("expected one DecodeRejected from the memo hit, got %v", h.rejected)
	}
}

func TestMemoNegativeCachingDisabled(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	m := newTestMemo(t, mp, func(o *Options) { o.NegativeTTL = -1 })

	if _, err := m.Deserialize(ctx, "nope"); err == nil {
		t.Fatalf("expected error")
	}
	if mp.sets != 0 {
		t.Fatalf("rejection stored despite NegativeTTL<0")
	}
}

func TestMemoBypassesNonText(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	m := newTestMemo(t, mp, nil)

	got, err := m.Deserialize(ctx, ref.Unix())
	if err != nil || !got.Equal(ref) {
		t.Fatalf("epoch decode: got %v err %v", got, err)
	}
	if _, err := m.Deserialize(ctx, true); !errors.Is(err, datecodec.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := m.Deserialize(ctx, "   "); !errors.Is(err, datecodec.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if mp.gets != 0 || mp.sets != 0 {
		t.Fatalf("non-text inputs touched the provider: gets=%d sets=%d", mp.gets, mp.sets)
	}
}

func TestMemoSelfHealsCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	h := &recHooks{}
	m := newTestMemo(t, mp, func(o *Options) { o.Hooks = h })

	in := "2009-01-19T00:00:00Z"
	key := m.key(in)
	if ok, err := mp.Set(ctx, key, []byte("not-wire-format"), 1, time.Minute); err != nil || !ok {
		t.Fatalf("inject corrupt: ok=%v err=%v", ok, err)
	}

	got, err := m.Deserialize(ctx, in)
	if err != nil || !got.Equal(ref) {
		t.Fatalf("decode over corrupt entry: got %v err %v", got, err)
	}
	if len(h.healed) != 1 || h.healed[0] != "corrupt" {
		t.Fatalf("expected corrupt self-heal, got %v", h.healed)
	}
	raw, ok, _ := mp.Get(ctx, key)
	if !ok {
		t.Fatalf("entry not re-stored after self-heal")
	}
	if e, err := wire.Decode(raw); err != nil || !e.Time.Equal(ref) {
		t.Fatalf("re-stored entry invalid: %+v %v", e, err)
	}
}

func TestMemoProviderFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	mp.getErr = errors.New("boom")
	m := newTestMemo(t, mp, nil)

	got, err := m.Deserialize(ctx, "2009-01-19")
	if err != nil || !got.Equal(ref) {
		t.Fatalf("got %v err %v", got, err)
	}
}

type recLogger struct {
	datecodec.NopLogger
	mu    sync.Mutex
	lines []datecodec.Fields
}

func (l *recLogger) record(f datecodec.Fields) {
	l.mu.Lock()
	l.lines = append(l.lines, f)
	l.mu.Unlock()
}
func (l *recLogger) Debug(_ string, f datecodec.Fields) { l.record(f) }
func (l *recLogger) Warn(_ string, f datecodec.Fields)  { l.record(f) }

func TestMemoLogsDoNotCarryInput(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	mp.getErr = errors.New("boom")
	mp.reject = true
	lg := &recLogger{}
	m := newTestMemo(t, mp, func(o *Options) { o.Logger = lg })

	const in = "2009-01-19T00:00:00Z"
	if _, err := m.Deserialize(ctx, in); err != nil {
		t.Fatal(err)
	}
	if len(lg.lines) < 2 {
		t.Fatalf("expected get-failure and set-rejected lines, got %v", lg.lines)
	}
	for _, f := range lg.lines {
		k, _ := f["key"].(string)
		if k == "" || strings.Contains(k, in) || strings.Contains(k, "memo:") {
			t.Fatalf("log key not redacted: %v", f)
		}
	}
}

func TestMemoSetRejectedHook(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	mp.reject = true
	h := &recHooks{}
	m := newTestMemo(t, mp, func(o *Options) { o.Hooks = h })

	if _, err := m.Deserialize(ctx, "2009-01-19"); err != nil {
		t.Fatal(err)
	}
	if len(h.refused) != 1 || !strings.HasPrefix(h.refused[0], "memo:test:") {
		t.Fatalf("expected MemoSetRejected, got %v", h.refused)
	}
}

func TestMemoForget(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	m := newTestMemo(t, mp, nil)

	in := "2009-01-19T00:00:00Z"
	if _, err := m.Deserialize(ctx, in); err != nil {
		t.Fatal(err)
	}
	if !mp.has(m.key(in)) {
		t.Fatalf("entry not stored")
	}
	if err := m.Forget(ctx, " "+in); err != nil {
		t.Fatal(err)
	}
	if mp.has(m.key(in)) {
		t.Fatalf("entry not forgotten")
	}
}

func TestMemoDoesNotStoreOversizeInput(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	m := newTestMemo(t, mp, nil)

	if _, err := m.Deserialize(ctx, strings.Repeat("9", 300)); !errors.Is(err, datecodec.ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
	if mp.sets != 0 {
		t.Fatalf("oversize input was stored")
	}
}
