// Package scheduler runs periodic tasks on a bounded worker pool
//
// All pools share one timer loop goroutine. Timers are added and cancelled only on that goroutine;
// other goroutines hand timer operations over through a post queue.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/remeh/sizedwaitgroup"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
	"github.com/xiaonanln/goTimer"
	"github.com/xiaonanln/gobridge/engine/consts"
	"github.com/xiaonanln/gobridge/engine/gwlog"
	"github.com/xiaonanln/gobridge/engine/gwutils"
	"github.com/xiaonanln/gobridge/engine/gwvar"
	"github.com/xiaonanln/gobridge/engine/opmon"
	"github.com/xiaonanln/gobridge/engine/post"
)

// Task is a periodic unit of work, Tick returns false when the task is done
type Task interface {
	Tick() bool
}

// NamedTask can be implemented by tasks to name their ticks in opmon
type NamedTask interface {
	TaskName() string
}

// Handle controls one scheduled task
type Handle interface {
	Cancel()
	Cancelled() bool
}

// Scheduler schedules tasks to tick every period after an initial delay
type Scheduler interface {
	Schedule(task Task, delay, period time.Duration) Handle
}

var (
	loopOnce  sync.Once
	loopQueue post.Queue
)

func startLoop() {
	loopOnce.Do(func() {
		go gwutils.RepeatUntilPanicless("scheduler loop", runLoop)
	})
}

func runLoop() {
	ticker := time.NewTicker(consts.SCHEDULER_TICK_INTERVAL)
	defer ticker.Stop()
	for range ticker.C {
		loopQueue.Tick()
		timer.Tick()
	}
}

// Pool is a Scheduler running ticks on at most poolSize goroutines at the same time
type Pool struct {
	wg      sizedwaitgroup.SizedWaitGroup
	closed  xnsyncutil.AtomicBool
	addLock sync.RWMutex // closed check and wg.Add of fire vs Close
	skipped uint64
}

// New creates a Pool
func New(poolSize int) *Pool {
	if poolSize <= 0 {
		gwlog.Panicf("scheduler: pool size must be positive, but is %d", poolSize)
	}
	return &Pool{
		wg: sizedwaitgroup.New(poolSize),
	}
}

// Schedule runs task.Tick after delay and then every period until cancelled or the task is done
func (p *Pool) Schedule(task Task, delay, period time.Duration) Handle {
	h := &taskHandle{
		pool:   p,
		task:   task,
		opname: "Tick",
	}
	if named, ok := task.(NamedTask); ok {
		h.opname = named.TaskName()
	}

	if p.closed.Load() {
		gwlog.Warnf("scheduler: pool closed, task %s is not scheduled", h.opname)
		h.cancelled.Store(true)
		return h
	}

	startLoop()
	loopQueue.Post(func() {
		if h.Cancelled() {
			return
		}
		h.timer = timer.AddCallback(delay, func() {
			h.timer = nil
			h.fire()
			if !h.Cancelled() {
				h.timer = timer.AddTimer(period, h.fire)
			}
		})
	})
	return h
}

// Skipped returns the number of fires dropped because the previous tick was still running
func (p *Pool) Skipped() uint64 {
	return atomic.LoadUint64(&p.skipped)
}

// Close stops accepting tasks and waits for all running ticks to finish
//
// A fire blocked on a full pool when Close is called never starts its tick.
func (p *Pool) Close() {
	p.closed.Store(true)
	p.addLock.Lock()
	p.addLock.Unlock()
	p.wg.Wait()
}

// acquire takes a worker slot, it returns false if the pool is closed before or while waiting for the slot
func (p *Pool) acquire() bool {
	p.addLock.RLock()
	defer p.addLock.RUnlock()
	if p.closed.Load() {
		return false
	}
	p.wg.Add() // blocks the loop when the pool is full
	if p.closed.Load() {
		p.wg.Done()
		return false
	}
	return true
}

type taskHandle struct {
	pool      *Pool
	task      Task
	opname    string
	cancelled xnsyncutil.AtomicBool
	running   int32
	timer     *timer.Timer // only accessed by the loop goroutine
}

// Cancel stops future ticks, a running tick is not interrupted
func (h *taskHandle) Cancel() {
	if h.cancelled.Load() {
		return
	}
	h.cancelled.Store(true)
	loopQueue.Post(func() {
		if h.timer != nil {
			h.timer.Cancel()
			h.timer = nil
		}
	})
}

func (h *taskHandle) Cancelled() bool {
	return h.cancelled.Load()
}

// fire is called by the loop goroutine
func (h *taskHandle) fire() {
	if h.Cancelled() {
		return
	}
	if !atomic.CompareAndSwapInt32(&h.running, 0, 1) {
		atomic.AddUint64(&h.pool.skipped, 1)
		return
	}
	if !h.pool.acquire() {
		atomic.StoreInt32(&h.running, 0)
		h.Cancel()
		return
	}

	gwvar.BorderTicks.Add(1)
	go func() {
		defer h.pool.wg.Done()
		defer atomic.StoreInt32(&h.running, 0)

		again := true
		op := opmon.StartOperation(h.opname)
		gwutils.RunPanicless(h.opname, func() {
			again = h.task.Tick()
		})
		op.Finish(consts.BORDER_TICK_WARN_THRESHOLD)

		if !again {
			h.Cancel()
		}
	}()
}
