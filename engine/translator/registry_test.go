package translator

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/xiaonanln/gobridge/engine/border"
	"github.com/xiaonanln/gobridge/engine/opmon"
	"github.com/xiaonanln/gobridge/engine/proto"
	"github.com/xiaonanln/gobridge/engine/scheduler"
	"github.com/xiaonanln/gobridge/engine/session"
)

func newTestSession() *session.Session {
	return session.NewSession(1, border.DefaultOptions(scheduler.New(1)))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunc(proto.MT_BORDER_SET_SIZE, func(msg proto.Message, s *session.Session) {})

	paniced := false
	func() {
		defer func() {
			paniced = recover() != nil
		}()
		r.RegisterFunc(proto.MT_BORDER_SET_SIZE, func(msg proto.Message, s *session.Session) {})
	}()
	assert.T(t, paniced, "duplicate registration should panic")
}

func TestDispatch(t *testing.T) {
	r := NewRegistry()
	var got []float64
	r.RegisterFunc(proto.MT_BORDER_SET_SIZE, func(msg proto.Message, s *session.Session) {
		got = append(got, msg.(*proto.BorderSetSize).NewSize)
	})
	assert.T(t, r.Registered(proto.MT_BORDER_SET_SIZE), "registered")
	assert.T(t, !r.Registered(proto.MT_BORDER_SET_CENTER), "not registered")

	s := newTestSession()
	defer s.Close()
	for i := 1; i <= 5; i++ {
		assert.T(t, r.Dispatch(&proto.BorderSetSize{NewSize: float64(i)}, s), "should be dispatched")
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, got)

	info, ok := opmon.Get("Translate.BorderSetSize")
	assert.T(t, ok, "dispatch should be monitored")
	assert.T(t, info.Count >= 5, "count")
}

func TestDispatchUnregisteredDrops(t *testing.T) {
	r := NewRegistry()
	s := newTestSession()
	defer s.Close()

	for i := 0; i < 100; i++ {
		assert.T(t, !r.Dispatch(&proto.BorderSetCenter{}, s), "should be dropped")
	}
	assert.Equal(t, uint64(100), r.DroppedCount())
	assert.Equal(t, 0, s.OutboundLen())
}

func TestDispatchPanicContained(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.RegisterFunc(proto.MT_SET_SLOT, func(msg proto.Message, s *session.Session) {
		calls++
		panic("bad slot")
	})
	s := newTestSession()
	defer s.Close()

	assert.T(t, r.Dispatch(&proto.SetSlot{}, s), "dispatched")
	assert.T(t, r.Dispatch(&proto.SetSlot{}, s), "dispatched")
	assert.Equal(t, 2, calls)
}

func TestMsgTypes(t *testing.T) {
	r := NewRegistry()
	nop := func(msg proto.Message, s *session.Session) {}
	r.RegisterFunc(proto.MT_SET_SLOT, nop)
	r.RegisterFunc(proto.MT_BORDER_INITIALIZE, nop)
	r.RegisterFunc(proto.MT_BORDER_SET_SIZE, nop)
	assert.Equal(t, []proto.MsgType{proto.MT_BORDER_INITIALIZE, proto.MT_BORDER_SET_SIZE, proto.MT_SET_SLOT}, r.MsgTypes())
}
