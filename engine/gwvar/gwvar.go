// Package gwvar publishes bridge counters with expvar, served at /debug/vars by the pprof http server
package gwvar

import "expvar"

// Bool is a boolean expvar
type Bool struct {
	val *expvar.Int
}

// NewBool creates and publishes a Bool
func NewBool(name string) *Bool {
	return &Bool{
		val: expvar.NewInt(name),
	}
}

// Value returns the value
func (b *Bool) Value() bool {
	return b.val.Value() > 0
}

// Set sets the value
func (b *Bool) Set(v bool) {
	if v {
		b.val.Set(1)
	} else {
		b.val.Set(0)
	}
}

var (
	// IsReplaying is true while recorded messages are being replayed
	IsReplaying = NewBool("IsReplaying")
	// OpenSessions is the number of sessions in session managers
	OpenSessions = expvar.NewInt("OpenSessions")
	// DroppedMessages counts inbound messages without translator
	DroppedMessages = expvar.NewInt("DroppedMessages")
	// BorderTicks counts ticks started by schedulers
	BorderTicks = expvar.NewInt("BorderTicks")
)
