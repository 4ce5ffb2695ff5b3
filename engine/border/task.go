package border

import (
	"time"

	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
)

// Effects of the border task
const (
	PushBackSound         = "mob.ghast.fireball"
	PushBackSoundVolume   = 0.1
	PushBackSoundPitch    = 2.0
	PushBackParticle      = "explode"
	PushBackParticleCount = 10
	PushBackMessage       = "§l§cYou have reached the world border!"

	WallParticle      = "rising_red_dust"
	WallParticleCount = 11
	wallStep          = 2
)

// Task enforces one generation of a world border on a session
//
// The rectangles are copied when the task is created. lastHighlight is only used by Tick, and ticks
// of one task never run at the same time.
type Task struct {
	accessor          SessionAccessor
	borderRect        common.Rect
	warningRect       common.Rect
	highlightInterval time.Duration
	now               func() time.Time
	lastHighlight     time.Time
}

// NewTask creates a Task, now defaults to time.Now
func NewTask(accessor SessionAccessor, borderRect, warningRect common.Rect, highlightInterval time.Duration, now func() time.Time) *Task {
	if now == nil {
		now = time.Now
	}
	return &Task{
		accessor:          accessor,
		borderRect:        borderRect,
		warningRect:       warningRect,
		highlightInterval: highlightInterval,
		now:               now,
	}
}

// TaskName is the opmon name of border ticks
func (t *Task) TaskName() string {
	return "BorderTick"
}

// BorderRect returns the border rectangle of this generation
func (t *Task) BorderRect() common.Rect {
	return t.borderRect
}

// WarningRect returns the warning rectangle of this generation
func (t *Task) WarningRect() common.Rect {
	return t.warningRect
}

// Tick pushes the entity back into the border and highlights nearby edges, returns false once the session is invalid
func (t *Task) Tick() bool {
	if t.accessor.IsInvalid() {
		if consts.DEBUG_BORDER {
			gwlog.Debugf("border: session invalid, task of %s stops", t.borderRect)
		}
		return false
	}

	pos, rot, onGround := t.accessor.EntitySnapshot()
	t.pushBack(pos, rot, onGround)
	t.highlight(pos)
	return true
}

func (t *Task) pushBack(pos, rot common.Vector3, onGround bool) {
	if t.borderRect.Contains(pos) {
		return
	}

	newPos := common.Vector3{
		X: common.Coord(t.borderRect.ClampX(float64(pos.X))),
		Y: pos.Y - common.Coord(t.accessor.EntityOffset()),
		Z: common.Coord(t.borderRect.ClampZ(float64(pos.Z))),
	}
	t.accessor.MoveEntityAbsolute(newPos, rot, onGround)
	if consts.DEBUG_BORDER {
		gwlog.Debugf("border: %s is %.2f beyond %s, pushed back to %s", pos, -t.borderRect.DistanceToEdge(pos), t.borderRect, newPos)
	}

	t.accessor.PlaySound(pos, PushBackSound, PushBackSoundVolume, PushBackSoundPitch)
	t.accessor.SpawnParticle(pos, PushBackParticle, PushBackParticleCount, 0)
	t.accessor.ShowActionBar(PushBackMessage)
}

func (t *Task) highlight(pos common.Vector3) {
	if t.warningRect.Contains(pos) {
		return
	}

	now := t.now()
	if t.lastHighlight.Add(t.highlightInterval).After(now) {
		return
	}

	x, z := float64(pos.X), float64(pos.Z)
	y := pos.Y - common.Coord(t.accessor.EntityOffset())
	wallX := common.Coord(x - WallParticleCount)
	wallZ := common.Coord(z - WallParticleCount)

	// standing exactly on a warning edge is outside the warning rectangle but beyond no edge
	drawn := false
	if x > t.warningRect.MaxX {
		t.drawWall(common.Vector3{X: common.Coord(t.borderRect.MaxX), Y: y, Z: wallZ}, true)
		drawn = true
	}
	if x < t.warningRect.MinX {
		t.drawWall(common.Vector3{X: common.Coord(t.borderRect.MinX), Y: y, Z: wallZ}, true)
		drawn = true
	}
	if z > t.warningRect.MaxZ {
		t.drawWall(common.Vector3{X: wallX, Y: y, Z: common.Coord(t.borderRect.MaxZ)}, false)
		drawn = true
	}
	if z < t.warningRect.MinZ {
		t.drawWall(common.Vector3{X: wallX, Y: y, Z: common.Coord(t.borderRect.MinZ)}, false)
		drawn = true
	}
	if drawn {
		t.lastHighlight = now
	}
}

// drawWall spawns a zigzag of particles along the X edge (alongZ) or the Z edge
func (t *Task) drawWall(pos common.Vector3, alongZ bool) {
	alternate := common.Coord(wallStep)
	for i := 0; i < WallParticleCount; i++ {
		t.accessor.SpawnParticle(pos, WallParticle, 1, 0)
		if alongZ {
			pos = pos.Add(common.Vector3{X: 0, Y: alternate, Z: wallStep})
		} else {
			pos = pos.Add(common.Vector3{X: wallStep, Y: alternate, Z: 0})
		}
		alternate = -alternate
	}
}
