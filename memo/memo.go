// Package memo caches text deserialization in a provider.Provider.
//
// Peers tend to repeat the same timestamp strings (created_at/updated_at of
// every record in a page), so Memo stores the decoded instant per input text,
// and the rejection reason for inputs that failed, under "memo:<ns>:".
// Non-text inputs are decoded directly.
package memo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unkn0wn-root/datecodec"
	"github.com/unkn0wn-root/datecodec/internal/util"
	"github.com/unkn0wn-root/datecodec/internal/wire"
	pr "github.com/unkn0wn-root/datecodec/provider"
)

const (
	defaultTTL         = time.Hour
	defaultNegativeTTL = time.Minute
	maxRawKey          = 64
)

// Options configure a Memo. Only Namespace and Provider are required.
type Options struct {
	Namespace string // e.g. "api:orders"
	Provider  pr.Provider

	Codec       *datecodec.DateCodec // nil => datecodec.Default
	TTL         time.Duration        // decoded instants; 0 => 1h
	NegativeTTL time.Duration        // rejected inputs; 0 => 1m, <0 => not stored
	Logger      datecodec.Logger     // if nil, NopLogger is used
	Hooks       datecodec.Hooks      // if nil, NopHooks is used
}

type Memo struct {
	prefix      string
	provider    pr.Provider
	codec       *datecodec.DateCodec
	ttl         time.Duration
	negativeTTL time.Duration
	log         datecodec.Logger
	hooks       datecodec.Hooks
}

func New(opts Options) (*Memo, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("memo: provider is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("memo: namespace is required")
	}
	m := &Memo{
		prefix:      "memo:" + opts.Namespace,
		provider:    opts.Provider,
		codec:       opts.Codec,
		ttl:         opts.TTL,
		negativeTTL: opts.NegativeTTL,
		log:         opts.Logger,
		hooks:       opts.Hooks,
	}
	if m.codec == nil {
		m.codec = datecodec.Default
	}
	if m.ttl <= 0 {
		m.ttl = defaultTTL
	}
	if m.negativeTTL == 0 {
		m.negativeTTL = defaultNegativeTTL
	}
	if m.log == nil {
		m.log = datecodec.NopLogger{}
	}
	if m.hooks == nil {
		m.hooks = datecodec.NopHooks{}
	}
	return m, nil
}

// Serialize delegates to the codec; there is nothing to memoize on this side.
func (m *Memo) Serialize(t time.Time) string { return m.codec.Serialize(t) }

// Deserialize behaves like DateCodec.Deserialize. Provider failures never fail
// the call; they fall back to decoding the input directly.
func (m *Memo) Deserialize(ctx context.Context, v any) (time.Time, error) {
	s, ok := text(v)
	if !ok {
		return m.codec.Deserialize(v)
	}
	typ := fmt.Sprintf("%T", v)
	key := m.key(s)

	raw, hit, err := m.provider.Get(ctx, key)
	if err != nil {
		m.log.Warn("memo get failed", datecodec.Fields{"key": util.Fingerprint(key), "err": err})
	}
	if err == nil && hit {
		e, derr := wire.Decode(raw)
		if derr == nil {
			return m.fromEntry(e, typ, s)
		}
		_ = m.provider.Del(ctx, key) // self-heal corrupt
		m.hooks.MemoSelfHeal(key, "corrupt")
	}

	t, err := m.codec.Deserialize(v)
	m.store(ctx, key, t, err)
	return t, err
}

// Forget drops the stored entry for text.
func (m *Memo) Forget(ctx context.Context, text string) error {
	return m.provider.Del(ctx, m.key(strings.TrimSpace(text)))
}

func (m *Memo) Close(ctx context.Context) error {
	return m.provider.Close(ctx)
}

func (m *Memo) key(s string) string {
	return util.MemoKey(m.prefix, s, maxRawKey)
}

// fromEntry rebuilds a result from a stored entry. Instants go back through the
// codec so Location and Precision always match the current codec.
func (m *Memo) fromEntry(e wire.Entry, typ, input string) (time.Time, error) {
	if e.Rejected != "" {
		r := datecodec.Reason(e.Rejected)
		m.hooks.DecodeRejected(typ, r)
		return time.Time{}, &datecodec.DecodeError{Type: typ, Input: input, Reason: r}
	}
	return m.codec.Deserialize(e.Time)
}

func (m *Memo) store(ctx context.Context, key string, t time.Time, decErr error) {
	var (
		b   []byte
		ttl = m.ttl
	)
	if decErr != nil {
		var de *datecodec.DecodeError
		// oversize inputs are not worth a slot; they hash to a key anyway
		if m.negativeTTL < 0 || !errors.As(decErr, &de) || de.Reason == datecodec.ReasonTooLarge {
			return
		}
		var err error
		if b, err = wire.EncodeRejected(string(de.Reason)); err != nil {
			return
		}
		ttl = m.negativeTTL
	} else {
		b = wire.EncodeInstant(t)
	}

	ok, err := m.provider.Set(ctx, key, b, 1, ttl)
	if err != nil {
		m.log.Warn("memo set failed", datecodec.Fields{"key": util.Fingerprint(key), "err": err})
		return
	}
	if !ok {
		m.hooks.MemoSetRejected(key)
		m.log.Debug("memo set rejected by provider (pressure)", datecodec.Fields{"key": util.Fingerprint(key)})
	}
}

// text extracts the input text the codec would parse, trimmed the same way.
func text(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
