// Package border simulates the world border of a session
package border

import (
	"fmt"
	"sync"
	"time"

	"github.com/hako/durafmt"
	"github.com/xiaonanln/gobridge/engine/common"
	"github.com/xiaonanln/gobridge/engine/config"
	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
	"github.com/xiaonanln/gobridge/engine/scheduler"
)

// Options defines how border tasks are scheduled
type Options struct {
	Scheduler         scheduler.Scheduler
	InitialDelay      time.Duration
	Period            time.Duration
	HighlightInterval time.Duration
	MaxDiameter       float64
	Now               func() time.Time // defaults to time.Now
}

// DefaultOptions returns Options with built-in timings
func DefaultOptions(s scheduler.Scheduler) Options {
	return Options{
		Scheduler:         s,
		InitialDelay:      consts.BORDER_TASK_INITIAL_DELAY,
		Period:            consts.BORDER_TASK_INTERVAL,
		HighlightInterval: consts.BORDER_HIGHLIGHT_INTERVAL,
		MaxDiameter:       consts.MAX_WORLD_DIAMETER,
	}
}

// OptionsFromConfig returns Options with timings of the [border] config
func OptionsFromConfig(s scheduler.Scheduler, cfg *config.BorderConfig) Options {
	opts := DefaultOptions(s)
	opts.Period = cfg.TickInterval
	opts.HighlightInterval = cfg.HighlightInterval
	opts.MaxDiameter = cfg.MaxDiameter
	return opts
}

// WorldBorder is the world border of one session
//
// Every transition must be followed by Commit, which recomputes the rectangles and replaces the running task.
type WorldBorder struct {
	sync.Mutex

	accessor SessionAccessor
	opts     Options

	center        common.Vector2
	oldDiameter   float64
	newDiameter   float64
	speed         time.Duration
	lerpStart     time.Time
	warningTime   int32
	warningBlocks int32

	borderRect  common.Rect
	warningRect common.Rect
	task        *Task
	handle      scheduler.Handle
	destroyed   bool
}

// NewWorldBorder creates an initialized WorldBorder
func NewWorldBorder(accessor SessionAccessor, opts Options, center common.Vector2, oldDiameter, newDiameter float64,
	speed time.Duration, warningBlocks int32, warningTime int32) *WorldBorder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	wb := &WorldBorder{
		accessor:      accessor,
		opts:          opts,
		center:        center,
		oldDiameter:   oldDiameter,
		newDiameter:   newDiameter,
		speed:         speed,
		warningBlocks: warningBlocks,
		warningTime:   warningTime,
	}
	wb.lerpStart = opts.Now()
	return wb
}

func (wb *WorldBorder) String() string {
	wb.Lock()
	defer wb.Unlock()
	return fmt.Sprintf("WorldBorder<center=%s, diameter=%.1f->%.1f in %s, warning=%d blocks/%ds>",
		wb.center, wb.oldDiameter, wb.newDiameter, durafmt.Parse(wb.speed).String(), wb.warningBlocks, wb.warningTime)
}

// SetSize resizes the border at once
func (wb *WorldBorder) SetSize(newSize float64) {
	wb.Lock()
	wb.oldDiameter = newSize
	wb.newDiameter = newSize
	wb.speed = 0
	wb.Unlock()
}

// LerpSize resizes the border from oldSize to newSize over speed
func (wb *WorldBorder) LerpSize(oldSize, newSize float64, speed time.Duration) {
	wb.Lock()
	wb.oldDiameter = oldSize
	wb.newDiameter = newSize
	wb.speed = speed
	wb.lerpStart = wb.opts.Now()
	wb.Unlock()
}

// SetCenter moves the border
func (wb *WorldBorder) SetCenter(center common.Vector2) {
	wb.Lock()
	wb.center = center
	wb.Unlock()
}

// SetWarningTime sets the warning time in seconds
func (wb *WorldBorder) SetWarningTime(warningTime int32) {
	wb.Lock()
	wb.warningTime = warningTime
	wb.Unlock()
}

// SetWarningBlocks sets the warning distance
func (wb *WorldBorder) SetWarningBlocks(warningBlocks int32) {
	wb.Lock()
	wb.warningBlocks = warningBlocks
	wb.Unlock()
}

// Commit recomputes the rectangles, cancels the running task and schedules a new one
//
// No task is scheduled if the diameter reaches the world size ceiling or the border is destroyed.
func (wb *WorldBorder) Commit() {
	wb.Lock()
	defer wb.Unlock()

	wb.borderRect = common.RectAround(wb.center, wb.newDiameter)
	wb.warningRect = wb.borderRect.Inset(float64(wb.warningBlocks))
	wb.cancelTask()

	if wb.destroyed {
		return
	}

	if wb.newDiameter >= wb.opts.MaxDiameter {
		if consts.DEBUG_BORDER {
			gwlog.Debugf("border: diameter %.1f reaches the world size, simulation disabled", wb.newDiameter)
		}
		return
	}

	wb.task = NewTask(wb.accessor, wb.borderRect, wb.warningRect, wb.opts.HighlightInterval, wb.opts.Now)
	wb.handle = wb.opts.Scheduler.Schedule(wb.task, wb.opts.InitialDelay, wb.opts.Period)
	if consts.DEBUG_BORDER {
		gwlog.Debugf("border: committed border %s, warning %s", wb.borderRect, wb.warningRect)
	}
}

// Destroy cancels the running task, later commits do not schedule tasks
func (wb *WorldBorder) Destroy() {
	wb.Lock()
	wb.destroyed = true
	wb.cancelTask()
	wb.Unlock()
}

func (wb *WorldBorder) cancelTask() {
	if wb.handle != nil {
		wb.handle.Cancel()
	}
	wb.handle = nil
	wb.task = nil
}

// Active returns if a task is enforcing the border
func (wb *WorldBorder) Active() bool {
	wb.Lock()
	defer wb.Unlock()
	return wb.handle != nil && !wb.handle.Cancelled()
}

// BorderRect returns the border rectangle of the last commit
func (wb *WorldBorder) BorderRect() common.Rect {
	wb.Lock()
	defer wb.Unlock()
	return wb.borderRect
}

// WarningRect returns the warning rectangle of the last commit
func (wb *WorldBorder) WarningRect() common.Rect {
	wb.Lock()
	defer wb.Unlock()
	return wb.warningRect
}

// Center returns the center of the border
func (wb *WorldBorder) Center() common.Vector2 {
	wb.Lock()
	defer wb.Unlock()
	return wb.center
}

// WarningTime returns the warning time in seconds
func (wb *WorldBorder) WarningTime() int32 {
	wb.Lock()
	defer wb.Unlock()
	return wb.warningTime
}

// WarningBlocks returns the warning distance
func (wb *WorldBorder) WarningBlocks() int32 {
	wb.Lock()
	defer wb.Unlock()
	return wb.warningBlocks
}

// Diameter returns the diameter at the time, interpolating while the border is resizing
func (wb *WorldBorder) Diameter(now time.Time) float64 {
	wb.Lock()
	defer wb.Unlock()
	if wb.speed <= 0 {
		return wb.newDiameter
	}
	elapsed := now.Sub(wb.lerpStart)
	if elapsed <= 0 {
		return wb.oldDiameter
	}
	if elapsed >= wb.speed {
		return wb.newDiameter
	}
	return wb.oldDiameter + (wb.newDiameter-wb.oldDiameter)*float64(elapsed)/float64(wb.speed)
}

// RemainingLerp returns how long the border keeps resizing
func (wb *WorldBorder) RemainingLerp(now time.Time) time.Duration {
	wb.Lock()
	defer wb.Unlock()
	remaining := wb.lerpStart.Add(wb.speed).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
