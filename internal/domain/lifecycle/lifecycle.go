// Package lifecycle holds shared timeouts for startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long a lifecycle hook may take.
const DefaultTimeout = 10 * time.Second
