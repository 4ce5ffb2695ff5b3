package border

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/scheduler"
)

type move struct {
	pos      common.Vector3
	rot      common.Vector3
	onGround bool
}

type sound struct {
	pos    common.Vector3
	sound  string
	volume float32
	pitch  float32
}

type particle struct {
	pos      common.Vector3
	particle string
	count    int32
}

type recordingAccessor struct {
	sync.Mutex
	pos       common.Vector3
	rot       common.Vector3
	onGround  bool
	offset    float32
	invalid   bool
	moves     []move
	sounds    []sound
	particles []particle
	actionBar []string
	// afterSnapshot runs after EntitySnapshot took its values
	afterSnapshot func()
}

func (a *recordingAccessor) EntitySnapshot() (common.Vector3, common.Vector3, bool) {
	a.Lock()
	pos, rot, onGround := a.pos, a.rot, a.onGround
	after := a.afterSnapshot
	a.Unlock()
	if after != nil {
		after()
	}
	return pos, rot, onGround
}

func (a *recordingAccessor) EntityPosition() common.Vector3 {
	a.Lock()
	defer a.Unlock()
	return a.pos
}

func (a *recordingAccessor) EntityRotation() common.Vector3 {
	a.Lock()
	defer a.Unlock()
	return a.rot
}

func (a *recordingAccessor) IsEntityOnGround() bool {
	a.Lock()
	defer a.Unlock()
	return a.onGround
}

func (a *recordingAccessor) EntityOffset() float32          { return a.offset }

func (a *recordingAccessor) MoveEntityAbsolute(pos common.Vector3, rot common.Vector3, onGround bool) {
	a.Lock()
	a.moves = append(a.moves, move{pos, rot, onGround})
	a.Unlock()
}

func (a *recordingAccessor) PlaySound(pos common.Vector3, snd string, volume float32, pitch float32) {
	a.Lock()
	a.sounds = append(a.sounds, sound{pos, snd, volume, pitch})
	a.Unlock()
}

func (a *recordingAccessor) SpawnParticle(pos common.Vector3, ptc string, count int32, data int32) {
	a.Lock()
	a.particles = append(a.particles, particle{pos, ptc, count})
	a.Unlock()
}

func (a *recordingAccessor) ShowActionBar(text string) {
	a.Lock()
	a.actionBar = append(a.actionBar, text)
	a.Unlock()
}

func (a *recordingAccessor) IsInvalid() bool {
	a.Lock()
	defer a.Unlock()
	return a.invalid
}

func (a *recordingAccessor) particlesOf(name string) []particle {
	a.Lock()
	defer a.Unlock()
	var res []particle
	for _, p := range a.particles {
		if p.particle == name {
			res = append(res, p)
		}
	}
	return res
}

func (a *recordingAccessor) reset() {
	a.Lock()
	a.moves, a.sounds, a.particles, a.actionBar = nil, nil, nil, nil
	a.Unlock()
}

type fakeHandle struct {
	cancelled bool
}

func (h *fakeHandle) Cancel()         { h.cancelled = true }
func (h *fakeHandle) Cancelled() bool { return h.cancelled }

type scheduled struct {
	task   scheduler.Task
	delay  time.Duration
	period time.Duration
	handle *fakeHandle
}

type fakeScheduler struct {
	scheduled []*scheduled
}

func (s *fakeScheduler) Schedule(task scheduler.Task, delay, period time.Duration) scheduler.Handle {
	sc := &scheduled{task, delay, period, &fakeHandle{}}
	s.scheduled = append(s.scheduled, sc)
	return sc.handle
}

func (s *fakeScheduler) active() []*scheduled {
	var res []*scheduled
	for _, sc := range s.scheduled {
		if !sc.handle.cancelled {
			res = append(res, sc)
		}
	}
	return res
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestBorder(diameter float64, warningBlocks int32) (*WorldBorder, *recordingAccessor, *fakeScheduler, *fakeClock) {
	acc := &recordingAccessor{offset: 1.62}
	sched := &fakeScheduler{}
	clock := &fakeClock{now: time.Unix(1600000000, 0)}
	opts := DefaultOptions(sched)
	opts.Now = clock.Now
	wb := NewWorldBorder(acc, opts, common.Vector2{X: 0, Y: 0}, diameter, diameter, 0, warningBlocks, 15)
	wb.Commit()
	return wb, acc, sched, clock
}

func TestInitializeRects(t *testing.T) {
	wb, _, sched, _ := newTestBorder(100, 5)
	assert.Equal(t, common.Rect{MinX: -50, MinZ: -50, MaxX: 50, MaxZ: 50}, wb.BorderRect())
	assert.Equal(t, common.Rect{MinX: -45, MinZ: -45, MaxX: 45, MaxZ: 45}, wb.WarningRect())
	assert.Equal(t, int32(5), wb.WarningBlocks())
	assert.Equal(t, int32(15), wb.WarningTime())
	assert.T(t, wb.Active(), "border should be active")

	assert.Equal(t, 1, len(sched.scheduled))
	sc := sched.scheduled[0]
	assert.Equal(t, time.Millisecond, sc.delay)
	assert.Equal(t, time.Millisecond*200, sc.period)
	task := sc.task.(*Task)
	assert.Equal(t, wb.BorderRect(), task.BorderRect())
	assert.Equal(t, wb.WarningRect(), task.WarningRect())
}

func TestRectsFollowTransitions(t *testing.T) {
	wb, _, _, _ := newTestBorder(100, 5)
	check := func() {
		c := wb.Center()
		br := wb.BorderRect()
		assert.Equal(t, common.RectAround(c, wb.Diameter(time.Now().Add(time.Hour))), br)
		assert.Equal(t, br.Inset(float64(wb.WarningBlocks())), wb.WarningRect())
	}

	wb.SetCenter(common.Vector2{X: 100, Y: -20})
	wb.Commit()
	check()
	assert.Equal(t, common.Rect{MinX: 50, MinZ: -70, MaxX: 150, MaxZ: 30}, wb.BorderRect())

	wb.SetWarningBlocks(10)
	wb.Commit()
	check()

	wb.SetSize(30)
	wb.Commit()
	check()

	wb.LerpSize(30, 80, time.Second*10)
	wb.Commit()
	check()

	wb.SetWarningTime(3)
	wb.Commit()
	check()
	assert.Equal(t, int32(3), wb.WarningTime())
}

func TestRapidCommitsKeepOneTask(t *testing.T) {
	wb, _, sched, _ := newTestBorder(100, 5)
	for i := 0; i < 20; i++ {
		wb.SetSize(float64(50 + i))
		wb.Commit()
		assert.Equal(t, 1, len(sched.active()))
	}
	assert.Equal(t, 21, len(sched.scheduled))
	latest := sched.active()[0].task.(*Task)
	assert.Equal(t, wb.BorderRect(), latest.BorderRect())
}

func TestWorldSizeCeiling(t *testing.T) {
	wb, _, sched, _ := newTestBorder(59999967, 5)
	assert.Equal(t, 0, len(sched.scheduled))
	assert.T(t, !wb.Active(), "no task at the world size ceiling")

	wb.SetSize(1000)
	wb.Commit()
	assert.Equal(t, 1, len(sched.active()))

	wb.SetSize(60000000)
	wb.Commit()
	assert.Equal(t, 0, len(sched.active()))
	assert.Equal(t, 1, len(sched.scheduled))
	assert.T(t, !wb.Active(), "simulation disabled")
}

func TestDestroy(t *testing.T) {
	wb, _, sched, _ := newTestBorder(100, 5)
	wb.Destroy()
	assert.Equal(t, 0, len(sched.active()))
	assert.T(t, !wb.Active(), "destroyed border is not active")

	wb.SetSize(200)
	wb.Commit()
	assert.Equal(t, 0, len(sched.active()))
	assert.Equal(t, 100.0, wb.BorderRect().MaxX)
}

func TestDiameter(t *testing.T) {
	wb, _, _, clock := newTestBorder(100, 5)
	assert.Equal(t, 100.0, wb.Diameter(clock.Now()))

	wb.LerpSize(100, 50, time.Second*10)
	wb.Commit()
	assert.Equal(t, 100.0, wb.Diameter(clock.Now()))
	assert.Equal(t, 75.0, wb.Diameter(clock.Now().Add(time.Second*5)))
	assert.Equal(t, 50.0, wb.Diameter(clock.Now().Add(time.Second*11)))
	assert.Equal(t, time.Second*4, wb.RemainingLerp(clock.Now().Add(time.Second*6)))
	assert.Equal(t, time.Duration(0), wb.RemainingLerp(clock.Now().Add(time.Minute)))
	// rectangles follow the target diameter
	assert.Equal(t, 25.0, wb.BorderRect().MaxX)
	assert.T(t, wb.String() != "", "string")
}

func TestPushBack(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(60, 70, 0)
	acc.rot = common.Vec3(10, 90, 90)
	acc.onGround = true
	assert.T(t, task.Tick(), "tick should continue")

	assert.Equal(t, 1, len(acc.moves))
	mv := acc.moves[0]
	assert.Equal(t, common.Coord(49), mv.pos.X)
	assert.Equal(t, common.Coord(70)-common.Coord(float32(1.62)), mv.pos.Y)
	assert.Equal(t, common.Coord(0), mv.pos.Z)
	assert.Equal(t, acc.rot, mv.rot)
	assert.T(t, mv.onGround, "on ground is kept")

	assert.Equal(t, []sound{{common.Vec3(60, 70, 0), "mob.ghast.fireball", 0.1, 2.0}}, acc.sounds)
	explode := acc.particlesOf(PushBackParticle)
	assert.Equal(t, 1, len(explode))
	assert.Equal(t, int32(10), explode[0].count)
	assert.Equal(t, common.Vec3(60, 70, 0), explode[0].pos)
	assert.Equal(t, []string{"§l§cYou have reached the world border!"}, acc.actionBar)
}

func TestPushBackKeepsSnapshotRotation(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(60, 70, 0)
	acc.rot = common.Vec3(10, 90, 90)
	acc.onGround = true
	acc.afterSnapshot = func() {
		acc.Lock()
		acc.rot = common.Vec3(-30, 180, 180)
		acc.onGround = false
		acc.Unlock()
	}
	task.Tick()

	assert.Equal(t, 1, len(acc.moves))
	assert.Equal(t, common.Vec3(10, 90, 90), acc.moves[0].rot)
	assert.T(t, acc.moves[0].onGround, "on ground should come from the same snapshot as the position")
}

func TestPushBackCorner(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(-50, 64, -80)
	task.Tick()
	assert.Equal(t, 1, len(acc.moves))
	assert.Equal(t, common.Coord(-49), acc.moves[0].pos.X)
	assert.Equal(t, common.Coord(-49), acc.moves[0].pos.Z)
}

func TestNoPushBackInside(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(10, 64, -10)
	task.Tick()
	assert.Equal(t, 0, len(acc.moves))
	assert.Equal(t, 0, len(acc.sounds))
	assert.Equal(t, 0, len(acc.particles))
}

func TestHighlightMaxXOnly(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(47, 64, 0)
	task.Tick()
	assert.Equal(t, 0, len(acc.moves))

	wall := acc.particlesOf(WallParticle)
	assert.Equal(t, 11, len(wall))
	y := common.Coord(64) - common.Coord(float32(1.62))
	for i, p := range wall {
		assert.Equal(t, common.Coord(50), p.pos.X)
		assert.Equal(t, common.Coord(-11+2*i), p.pos.Z)
		expectY := y
		if i%2 == 1 {
			expectY += 2
		}
		assert.Tf(t, math.Abs(float64(expectY-p.pos.Y)) < 1e-3, "particle %d at y %v, should be %v", i, p.pos.Y, expectY)
		assert.Equal(t, int32(1), p.count)
	}
}

func TestHighlightZWall(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(0, 64, -46)
	task.Tick()
	wall := acc.particlesOf(WallParticle)
	assert.Equal(t, 11, len(wall))
	for i, p := range wall {
		assert.Equal(t, common.Coord(-50), p.pos.Z)
		assert.Equal(t, common.Coord(-11+2*i), p.pos.X)
	}
}

func TestHighlightCornerDrawsTwoWalls(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(47, 64, 48)
	task.Tick()
	assert.Equal(t, 22, len(acc.particlesOf(WallParticle)))
}

func TestHighlightInterval(t *testing.T) {
	_, acc, sched, clock := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(47, 64, 0)
	task.Tick()
	assert.Equal(t, 11, len(acc.particlesOf(WallParticle)))

	clock.Advance(time.Millisecond * 200)
	task.Tick()
	clock.Advance(time.Millisecond * 200)
	task.Tick()
	assert.Equal(t, 11, len(acc.particlesOf(WallParticle)))

	clock.Advance(time.Millisecond * 100)
	task.Tick()
	assert.Equal(t, 22, len(acc.particlesOf(WallParticle)))
}

func TestWarningEdgeKeepsHighlightReady(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(45, 64, 0)
	task.Tick()
	assert.Equal(t, 0, len(acc.particlesOf(WallParticle)))

	acc.pos = common.Vec3(47, 64, 0)
	task.Tick()
	assert.Equal(t, 11, len(acc.particlesOf(WallParticle)))
}

func TestInvalidSessionStopsTask(t *testing.T) {
	_, acc, sched, _ := newTestBorder(100, 5)
	task := sched.active()[0].task.(*Task)

	acc.pos = common.Vec3(60, 64, 0)
	acc.invalid = true
	assert.T(t, !task.Tick(), "tick should report done")
	assert.Equal(t, 0, len(acc.moves))
	assert.Equal(t, 0, len(acc.particles))
}

func TestTaskUsesSnapshotRects(t *testing.T) {
	wb, acc, sched, _ := newTestBorder(100, 5)
	old := sched.active()[0].task.(*Task)

	wb.SetSize(200)
	wb.Commit()

	acc.pos = common.Vec3(60, 64, 0)
	old.Tick()
	assert.Equal(t, 1, len(acc.moves))
	assert.Equal(t, common.Coord(49), acc.moves[0].pos.X)

	acc.reset()
	current := sched.active()[0].task.(*Task)
	current.Tick()
	assert.Equal(t, 0, len(acc.moves))
}

func TestBorderWithRealScheduler(t *testing.T) {
	pool := scheduler.New(4)
	defer pool.Close()

	acc := &recordingAccessor{offset: 1.62}
	acc.pos = common.Vec3(60, 64, 0)
	opts := DefaultOptions(pool)
	opts.Period = time.Millisecond * 20
	wb := NewWorldBorder(acc, opts, common.Vector2{}, 100, 100, 0, 5, 15)
	wb.Commit()

	deadline := time.Now().Add(time.Second * 2)
	for {
		acc.Lock()
		n := len(acc.moves)
		acc.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("border task did not tick")
		}
		time.Sleep(time.Millisecond * 5)
	}

	acc.Lock()
	acc.invalid = true
	acc.Unlock()
	deadline = time.Now().Add(time.Second * 2)
	for wb.Active() {
		if time.Now().After(deadline) {
			t.Fatalf("border task should stop for invalid session")
		}
		time.Sleep(time.Millisecond * 5)
	}
	wb.Destroy()
}
