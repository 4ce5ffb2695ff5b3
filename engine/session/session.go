// Package session keeps the state of bridged client connections
package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
	"github.com/xiaonanln/gobridge/engine/border"
	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
	"github.com/xiaonanln/gobridge/engine/proto"
)

// PlayerOffset is the distance between the feet and the position of player entities
const PlayerOffset = 1.62

// EntityState is one published snapshot of the session entity
type EntityState struct {
	Position common.Vector3
	Rotation common.Vector3 // pitch, yaw, head yaw
	OnGround bool
}

// Session is one bridged client
//
// Inbound messages of a session are handled by one goroutine. Border tasks reach the session
// only through BoundaryAccessor.
type Session struct {
	id        common.SessionID
	runtimeID common.RuntimeEntityID
	offset    float32

	state    atomic.Value // EntityState
	moveLock sync.Mutex
	outbound *xnsyncutil.SyncQueue
	closed   xnsyncutil.AtomicBool

	borderLock  sync.Mutex
	borderOpts  border.Options
	worldBorder *border.WorldBorder
}

// NewSession creates a session for the player entity
func NewSession(runtimeID common.RuntimeEntityID, borderOpts border.Options) *Session {
	s := &Session{
		id:         common.GenSessionID(),
		runtimeID:  runtimeID,
		offset:     PlayerOffset,
		outbound:   xnsyncutil.NewSyncQueue(),
		borderOpts: borderOpts,
	}
	s.state.Store(EntityState{})
	return s
}

func (s *Session) String() string {
	return fmt.Sprintf("Session<%s>", s.id)
}

// ID returns the session id
func (s *Session) ID() common.SessionID {
	return s.id
}

// RuntimeEntityID returns the client side id of the player entity
func (s *Session) RuntimeEntityID() common.RuntimeEntityID {
	return s.runtimeID
}

// EntityState returns the latest entity snapshot
func (s *Session) EntityState() EntityState {
	return s.state.Load().(EntityState)
}

// UpdateEntityState stores a position reported by the client, nothing is sent
func (s *Session) UpdateEntityState(pos common.Vector3, rot common.Vector3, onGround bool) {
	s.moveLock.Lock()
	s.state.Store(EntityState{Position: pos, Rotation: rot, OnGround: onGround})
	s.moveLock.Unlock()
}

// MoveAbsolute moves the entity to the feet position pos and tells the client
func (s *Session) MoveAbsolute(pos common.Vector3, rot common.Vector3, onGround bool, teleported bool) {
	pos.Y += common.Coord(s.offset)

	s.moveLock.Lock()
	s.state.Store(EntityState{Position: pos, Rotation: rot, OnGround: onGround})
	s.Send(&proto.MoveEntityAbsolute{
		RuntimeEntityID: s.runtimeID,
		Position:        pos,
		Rotation:        rot,
		OnGround:        onGround,
		Teleported:      teleported,
	})
	s.moveLock.Unlock()
}

// Send queues a message to the client, messages are dropped after the session is closed
func (s *Session) Send(msg proto.Message) {
	if s.closed.Load() {
		return
	}
	if consts.DEBUG_PACKETS {
		gwlog.Debugf("%s SEND %s %+v", s, msg.MsgType(), msg)
	}
	s.outbound.Push(msg)
}

// Recv waits for the next message to the client, returns nil when the session is closed
func (s *Session) Recv() proto.Message {
	v := s.outbound.Pop()
	if v == nil {
		return nil
	}
	return v.(proto.Message)
}

// TryRecv returns the next message to the client if there is one
func (s *Session) TryRecv() (proto.Message, bool) {
	v, ok := s.outbound.TryPop()
	if !ok || v == nil {
		return nil, false
	}
	return v.(proto.Message), true
}

// OutboundLen returns the number of messages waiting to be sent
func (s *Session) OutboundLen() int {
	return s.outbound.Len()
}

// IsClosed returns if the session is closed
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Close closes the session and stops its world border
func (s *Session) Close() {
	if s.closed.Load() {
		return
	}
	s.closed.Store(true)

	s.borderLock.Lock()
	if s.worldBorder != nil {
		s.worldBorder.Destroy()
	}
	s.borderLock.Unlock()

	s.outbound.Close()
	gwlog.Debugf("%s closed", s)
}

// WorldBorder returns the world border of the session, or nil before it is initialized
func (s *Session) WorldBorder() *border.WorldBorder {
	s.borderLock.Lock()
	defer s.borderLock.Unlock()
	return s.worldBorder
}

// InitWorldBorder replaces the world border of the session, the caller should Commit the returned border
func (s *Session) InitWorldBorder(center common.Vector2, oldDiameter, newDiameter float64, speed time.Duration,
	warningBlocks int32, warningTime int32) *border.WorldBorder {
	wb := border.NewWorldBorder(s.BoundaryAccessor(), s.borderOpts, center, oldDiameter, newDiameter, speed, warningBlocks, warningTime)

	s.borderLock.Lock()
	defer s.borderLock.Unlock()
	if s.worldBorder != nil {
		s.worldBorder.Destroy()
	}
	if s.closed.Load() {
		wb.Destroy()
	}
	s.worldBorder = wb
	return wb
}

// BoundaryAccessor returns the accessor for border tasks of this session
func (s *Session) BoundaryAccessor() border.SessionAccessor {
	return boundaryAccessor{s}
}
