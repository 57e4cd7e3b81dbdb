// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sync/atomic"

// CancelToken is the cooperative cancellation flag shared between a task
// runner and the batch processor. It transitions once from "not cancelled"
// to "cancelled" and is never reset; the processor polls it at batch
// boundaries only.
type CancelToken struct {
	flag atomic.Bool
}

// Cancel sets the token. Safe to call from any goroutine; idempotent.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	return t.flag.Load()
}
