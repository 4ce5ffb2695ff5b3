package session

import (
	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/proto"
)

type boundaryAccessor struct {
	s *Session
}

func (a boundaryAccessor) EntitySnapshot() (common.Vector3, common.Vector3, bool) {
	state := a.s.EntityState()
	return state.Position, state.Rotation, state.OnGround
}

func (a boundaryAccessor) EntityPosition() common.Vector3 {
	return a.s.EntityState().Position
}

func (a boundaryAccessor) EntityRotation() common.Vector3 {
	return a.s.EntityState().Rotation
}

func (a boundaryAccessor) IsEntityOnGround() bool {
	return a.s.EntityState().OnGround
}

func (a boundaryAccessor) EntityOffset() float32 {
	return a.s.offset
}

func (a boundaryAccessor) MoveEntityAbsolute(pos common.Vector3, rot common.Vector3, onGround bool) {
	a.s.MoveAbsolute(pos, rot, onGround, false)
}

func (a boundaryAccessor) PlaySound(pos common.Vector3, sound string, volume float32, pitch float32) {
	a.s.Send(&proto.PlaySound{Position: pos, Sound: sound, Volume: volume, Pitch: pitch})
}

func (a boundaryAccessor) SpawnParticle(pos common.Vector3, particle string, count int32, data int32) {
	a.s.Send(&proto.SpawnParticle{Position: pos, Particle: particle, Count: count, Data: data})
}

func (a boundaryAccessor) ShowActionBar(text string) {
	a.s.Send(&proto.ShowActionBar{Text: text})
}

func (a boundaryAccessor) IsInvalid() bool {
	return a.s == nil || a.s.IsClosed()
}
