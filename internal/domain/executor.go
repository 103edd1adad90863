package domain

import "context"

// WorkerExecutor defines the interface for invoking the external worker
// once per dispatch request. Execute blocks until the worker exits.
//
// The returned result is non-nil whenever the invocation was attempted,
// including launch failures and non-zero exits; err mirrors the failure
// so callers may choose to inspect either.
type WorkerExecutor interface {
	Execute(ctx context.Context, req *DispatchRequest) (*DispatchResult, error)
}
