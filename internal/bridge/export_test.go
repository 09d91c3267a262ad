package bridge

import "time"

// SetSleep replaces the paste delay wait.
func SetSleep(b *Bridge, fn func(time.Duration)) { b.sleep = fn }
