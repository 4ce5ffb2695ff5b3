package border

import (
	"github.com/xiaonanln/gobridge/engine/common"
)

// SessionAccessor is everything a border task may touch of a session
//
// All methods are safe to call from any goroutine. Each entity state getter loads the latest published
// snapshot; EntitySnapshot returns position, rotation and on-ground of the same snapshot.
type SessionAccessor interface {
	EntitySnapshot() (pos common.Vector3, rot common.Vector3, onGround bool)
	EntityPosition() common.Vector3
	EntityRotation() common.Vector3
	IsEntityOnGround() bool
	// EntityOffset is the distance between the entity feet and its reported position
	EntityOffset() float32
	// MoveEntityAbsolute is serialized with the session's own movement updates
	MoveEntityAbsolute(pos common.Vector3, rot common.Vector3, onGround bool)
	PlaySound(pos common.Vector3, sound string, volume float32, pitch float32)
	SpawnParticle(pos common.Vector3, particle string, count int32, data int32)
	ShowActionBar(text string)
	// IsInvalid returns true once the session is closed
	IsInvalid() bool
}
