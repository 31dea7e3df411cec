// Package clock abstracts wall-clock access so manifest timestamps are
// injectable in tests.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}
