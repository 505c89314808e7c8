package lock

import "errors"

// ErrNotHeld is returned when releasing a key that is not held with the given token
var ErrNotHeld = errors.New("lock not held")

// AcquireInput contains parameters for acquiring a lock
type AcquireInput struct {
	Key string
}

// AcquireOutput identifies the acquired lock
type AcquireOutput struct {
	// Token must be passed back to Release
	Token string
}

// ReleaseInput contains parameters for releasing a lock
type ReleaseInput struct {
	Key   string
	Token string
}
