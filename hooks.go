package datecodec

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; they run on the decode path.
type Hooks interface {
	// Deserialize rejected an input.
	DecodeRejected(inputType string, reason Reason)

	// A text input did not match the primary layout but matched layout.
	LayoutFallback(layout string)

	// A numeric input (or all-digit text) was read as an epoch value.
	EpochCoerced(inputType string)

	// The memo deleted a stored entry it could not use.
	// reason is "corrupt" when the stored envelope failed validation.
	MemoSelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	MemoSetRejected(storageKey string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) DecodeRejected(string, Reason) {}
func (NopHooks) LayoutFallback(string)         {}
func (NopHooks) EpochCoerced(string)           {}
func (NopHooks) MemoSelfHeal(string, string)   {}
func (NopHooks) MemoSetRejected(string)        {}
