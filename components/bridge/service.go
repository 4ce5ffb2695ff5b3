package bridge

import (
	"sync/atomic"

	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
	"github.com/xiaonanln/gobridge/engine/border"
	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/config"
	"github.com/xiaonanln/gobridge/engine/gwlog"
	"github.com/xiaonanln/gobridge/engine/items"
	"github.com/xiaonanln/gobridge/engine/proto"
	"github.com/xiaonanln/gobridge/engine/scheduler"
	"github.com/xiaonanln/gobridge/engine/session"
	"github.com/xiaonanln/gobridge/engine/translator"
)

// Service owns the sessions of the bridge and the shared border scheduler
type Service struct {
	registry      *translator.Registry
	pool          *scheduler.Pool
	sessions      *session.Manager
	borderOpts    border.Options
	lastRuntimeID uint64
}

// NewService creates a Service using the config
func NewService(cfg *config.BridgeConfig) *Service {
	pool := scheduler.New(cfg.Bridge.WorkerPoolSize)
	return &Service{
		registry:   NewTranslatorRegistry(items.DefaultRemapper(cfg.Items.LogMisses)),
		pool:       pool,
		sessions:   session.NewManager(),
		borderOpts: border.OptionsFromConfig(pool, &cfg.Border),
	}
}

// Registry returns the translator registry
func (svc *Service) Registry() *translator.Registry {
	return svc.registry
}

// Sessions returns the lookup of open sessions
func (svc *Service) Sessions() session.Lookup {
	return svc.sessions
}

// OpenSession creates a session with a new player entity
func (svc *Service) OpenSession() *session.Session {
	runtimeID := common.RuntimeEntityID(atomic.AddUint64(&svc.lastRuntimeID, 1))
	s := session.NewSession(runtimeID, svc.borderOpts)
	svc.sessions.Add(s)
	gwlog.Infof("%s opened, runtime entity id %d", s, runtimeID)
	return s
}

// CloseSession closes the session and forgets it
func (svc *Service) CloseSession(s *session.Session) {
	svc.sessions.Remove(s.ID())
	s.Close()
}

// Serve dispatches inbound messages of the session in order until the queue is closed, then closes the session
func (svc *Service) Serve(s *session.Session, inbound *xnsyncutil.SyncQueue) {
	defer svc.CloseSession(s)

	for {
		v := inbound.Pop()
		if v == nil { // inbound closed
			break
		}
		msg, ok := v.(proto.Message)
		if !ok {
			gwlog.Errorf("%s: invalid inbound item %T", s, v)
			continue
		}
		svc.registry.Dispatch(msg, s)
	}
}

// Close closes all sessions and waits for running border ticks
func (svc *Service) Close() {
	svc.sessions.CloseAll()
	svc.pool.Close()
	gwlog.Infof("bridge service closed, %d messages dropped without translator", svc.registry.DroppedCount())
}
