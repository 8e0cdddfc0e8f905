// Package sloghooks reports datecodec.Hooks events through log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/datecodec"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectEvery   uint64
	FallbackEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectCtr   atomic.Uint64
	fallbackCtr atomic.Uint64
}

var _ datecodec.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) DecodeRejected(inputType string, reason datecodec.Reason) {
	if h.l == nil || !sample(h.opts.RejectEvery, &h.rejectCtr) {
		return
	}
	h.l.Info("datecodec.decode_rejected",
		"type", inputType,
		"reason", string(reason))
}

func (h *Hooks) LayoutFallback(layout string) {
	if h.l == nil || !sample(h.opts.FallbackEvery, &h.fallbackCtr) {
		return
	}
	h.l.Debug("datecodec.layout_fallback",
		"layout", layout)
}

func (h *Hooks) EpochCoerced(inputType string) {
	if h.l == nil {
		return
	}
	h.l.Debug("datecodec.epoch_coerced",
		"type", inputType)
}

func (h *Hooks) MemoSelfHeal(storageKey, reason string) {
	if h.l == nil {
		return
	}
	h.l.Warn("datecodec.memo_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) MemoSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("datecodec.memo_set_rejected",
		"key", h.redact(storageKey))
}
