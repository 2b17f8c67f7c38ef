package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when the lock could not be taken before the
// caller's context expired.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker serialises work on a key across goroutines or processes.
type Locker interface {
	// Acquire blocks until the key is held or ctx is done. The returned
	// release func is safe to call more than once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
