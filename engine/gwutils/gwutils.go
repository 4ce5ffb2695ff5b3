// Package gwutils contains helpers shared by goroutine bodies of the bridge
package gwutils

import "github.com/xiaonanln/gobridge/engine/gwlog"

// RunPanicless runs f and recovers a panic, which is logged under name with the stack
//
// It returns true if f panicked.
func RunPanicless(name string, f func()) (panicked bool) {
	defer func() {
		if err := recover(); err != nil {
			gwlog.TraceError("%s panic: %v", name, err)
			panicked = true
		}
	}()

	f()
	return
}

// RepeatUntilPanicless runs f again after every panic, it returns once f returns normally
func RepeatUntilPanicless(name string, f func()) {
	for RunPanicless(name, f) {
		gwlog.Warnf("%s restarted after panic", name)
	}
}
