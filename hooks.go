package roster

import (
	"sync"

	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/records"
)

// Hook function types for reconciliation events
type (
	// IDCopiedHook is called for every identifier copied between records
	IDCopiedHook func(change reconciler.ChangeRecord)

	// RecordRemovedHook is called for every record removed from the roster
	RecordRemovedHook func(record records.Record, reason reconciler.RemovalReason)
)

// hooks manages event callbacks for reconciliation runs
type hooks struct {
	mu              sync.RWMutex
	onIDCopied      []IDCopiedHook
	onRecordRemoved []RecordRemovedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnIDCopied registers a callback for copied identifiers
func (h *hooks) OnIDCopied(fn IDCopiedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onIDCopied = append(h.onIDCopied, fn)
}

// OnRecordRemoved registers a callback for removed records
func (h *hooks) OnRecordRemoved(fn RecordRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordRemoved = append(h.onRecordRemoved, fn)
}

// triggerResult replays a finished run through the registered hooks in log
// order.
func (h *hooks) triggerResult(result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, change := range result.Changes {
		for _, hook := range h.onIDCopied {
			hook(change)
		}
	}
	for _, removal := range result.Removals {
		for _, hook := range h.onRecordRemoved {
			hook(removal.Record, removal.Reason)
		}
	}
}
