// Package translator dispatches inbound messages to their translators
package translator

import (
	"sort"
	"sync/atomic"

	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
	"github.com/xiaonanln/gobridge/engine/gwutils"
	"github.com/xiaonanln/gobridge/engine/gwvar"
	"github.com/xiaonanln/gobridge/engine/opmon"
	"github.com/xiaonanln/gobridge/engine/proto"
	"github.com/xiaonanln/gobridge/engine/session"
	"golang.org/x/time/rate"
)

// Translator translates one inbound message for a session
type Translator interface {
	Translate(msg proto.Message, s *session.Session)
}

// TranslatorFunc adapts a function to Translator
type TranslatorFunc func(msg proto.Message, s *session.Session)

// Translate implements Translator
func (f TranslatorFunc) Translate(msg proto.Message, s *session.Session) {
	f(msg, s)
}

type registration struct {
	translator Translator
	opname     string
}

// Registry maps message types to translators
//
// Translators are registered at startup, Dispatch can be called concurrently once registration is done.
type Registry struct {
	translators map[proto.MsgType]registration
	dropped     uint64
	dropLimiter *rate.Limiter
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		translators: map[proto.MsgType]registration{},
		dropLimiter: rate.NewLimiter(rate.Limit(consts.UNHANDLED_LOG_PER_SECOND), consts.UNHANDLED_LOG_PER_SECOND),
	}
}

// Register registers the translator of the message type, panics if the type is already registered
func (r *Registry) Register(msgType proto.MsgType, translator Translator) {
	if _, ok := r.translators[msgType]; ok {
		gwlog.Panicf("translator of %s is already registered", msgType)
	}
	r.translators[msgType] = registration{
		translator: translator,
		opname:     "Translate." + msgType.String(),
	}
}

// RegisterFunc registers a function as the translator of the message type
func (r *Registry) RegisterFunc(msgType proto.MsgType, f func(msg proto.Message, s *session.Session)) {
	r.Register(msgType, TranslatorFunc(f))
}

// Registered returns if the message type has a translator
func (r *Registry) Registered(msgType proto.MsgType) bool {
	_, ok := r.translators[msgType]
	return ok
}

// MsgTypes returns all registered message types in order
func (r *Registry) MsgTypes() []proto.MsgType {
	types := make([]proto.MsgType, 0, len(r.translators))
	for mt := range r.translators {
		types = append(types, mt)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	return types
}

// DroppedCount returns the number of messages dropped for having no translator
func (r *Registry) DroppedCount() uint64 {
	return atomic.LoadUint64(&r.dropped)
}

// Dispatch translates the message for the session, returns false if the message is dropped
//
// A panic in the translator is logged and the session continues with the next message.
func (r *Registry) Dispatch(msg proto.Message, s *session.Session) bool {
	msgType := msg.MsgType()
	reg, ok := r.translators[msgType]
	if !ok {
		atomic.AddUint64(&r.dropped, 1)
		gwvar.DroppedMessages.Add(1)
		if r.dropLimiter.Allow() {
			gwlog.Infof("%s: no translator for %s, message dropped", s, msgType)
		}
		return false
	}

	if consts.DEBUG_PACKETS {
		gwlog.Debugf("%s RECV %s %+v", s, msgType, msg)
	}

	op := opmon.StartOperation(reg.opname)
	if gwutils.RunPanicless(reg.opname, func() {
		reg.translator.Translate(msg, s)
	}) {
		gwlog.Errorf("%s: translating %s failed", s, msgType)
	}
	op.Finish(consts.TRANSLATE_WARN_THRESHOLD)
	return true
}
